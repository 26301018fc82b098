// Package handler implements the interactive front end for ipannotate.
//
// MenuHandler presents a numbered menu on a line-oriented terminal:
// add, list, show, delete, save, load and exit. Each action maps to one
// AnnotationService operation. Failures are printed and the menu keeps
// running; only the exit choice or the end of input stops it.
//
// The add action prompts for every optional field in a fixed order.
// Empty answers leave the field at its default. Enumerated fields list
// their options and only exact matches are kept. When a Suggester is set,
// values it knows are shown in brackets and accepted by an empty answer.
package handler
