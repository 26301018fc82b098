package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ipannotate/internal/domain"
	"ipannotate/internal/geo"
	"ipannotate/internal/service"
)

const rule = "=================================================="

// maxAnswerBytes bounds a single answer; longer lines are refused
const maxAnswerBytes = 16 * 1024

// Suggester offers pre-filled values for a new annotation
type Suggester interface {
	Lookup(ip string) geo.Suggestion
}

// MenuHandler drives the annotation service from a line-oriented menu
type MenuHandler struct {
	svc       *service.AnnotationService
	reader    *bufio.Reader
	out       io.Writer
	dataFile  string
	suggester Suggester
	eof       bool
	readErr   error
}

// NewMenuHandler creates a menu reading answers from in and writing
// prompts to out. dataFile is the default for save and load.
func NewMenuHandler(svc *service.AnnotationService, in io.Reader, out io.Writer, dataFile string) *MenuHandler {
	return &MenuHandler{
		svc:      svc,
		reader:   bufio.NewReader(in),
		out:      out,
		dataFile: dataFile,
	}
}

// SetSuggester sets the source of pre-filled values for the add prompts
func (h *MenuHandler) SetSuggester(s Suggester) {
	h.suggester = s
}

// Run shows the menu until the operator exits or input ends. Failed
// operations are reported and the loop continues.
func (h *MenuHandler) Run(ctx context.Context) error {
	for {
		h.printMenu()

		choice, ok := h.prompt("Choose an option (1-7): ")
		if !ok {
			fmt.Fprintln(h.out)
			return h.readErr
		}

		switch choice {
		case "1":
			h.Add()
		case "2":
			h.List()
		case "3":
			h.Show()
		case "4":
			h.Delete()
		case "5":
			h.Save(ctx)
		case "6":
			h.Load(ctx)
		case "7":
			fmt.Fprintln(h.out, "Exiting")
			return nil
		default:
			fmt.Fprintln(h.out, "Invalid choice, please try again")
		}
	}
}

func (h *MenuHandler) printMenu() {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, rule)
	fmt.Fprintln(h.out, "Manual IP Annotation")
	fmt.Fprintln(h.out, rule)
	fmt.Fprintln(h.out, "1. Add annotation")
	fmt.Fprintln(h.out, "2. List annotations")
	fmt.Fprintln(h.out, "3. Show annotation")
	fmt.Fprintln(h.out, "4. Delete annotation")
	fmt.Fprintln(h.out, "5. Save to file")
	fmt.Fprintln(h.out, "6. Load from file")
	fmt.Fprintln(h.out, "7. Exit")
	fmt.Fprintln(h.out, rule)
}

// prompt writes label and reads one trimmed line, asking again when the
// line is too long. ok is false once input is exhausted.
func (h *MenuHandler) prompt(label string) (string, bool) {
	for {
		fmt.Fprint(h.out, label)
		if h.eof {
			return "", false
		}

		line, tooLong, err := h.readLine()
		if err != nil {
			h.eof = true
			if !errors.Is(err, io.EOF) {
				h.readErr = err
			}
			return "", false
		}
		if tooLong {
			fmt.Fprintf(h.out, "\nAnswer too long (limit %d bytes), please try again\n", maxAnswerBytes)
			continue
		}
		return strings.TrimSpace(line), true
	}
}

// readLine reads up to the next newline. A line over maxAnswerBytes is
// consumed and reported as tooLong.
func (h *MenuHandler) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, readErr := h.reader.ReadLine()
		if readErr != nil {
			return "", false, readErr
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxAnswerBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Add collects every optional field and stores the annotation
func (h *MenuHandler) Add() {
	fmt.Fprintln(h.out, "\n=== Add annotation ===")

	ip, ok := h.prompt("IP address: ")
	if !ok {
		return
	}
	if ip == "" {
		fmt.Fprintln(h.out, "IP address must not be empty")
		return
	}
	if err := domain.ValidateIPv4(ip); err != nil {
		fmt.Fprintln(h.out, "Invalid IPv4 address format")
		return
	}

	var suggestion geo.Suggestion
	if h.suggester != nil {
		suggestion = h.suggester.Lookup(ip)
	}

	fmt.Fprintf(h.out, "\nAnnotating %s:\n", ip)

	f := fieldReader{h: h, suggestion: suggestion}
	var p domain.Partial
	p.LocationInfo = f.text("Location (e.g. China Guangdong Shenzhen)", domain.FieldLocationInfo)
	p.ASNInfo = f.text("ASN (e.g. AS4134)", domain.FieldASNInfo)
	p.ASNOwner = f.text("ASN owner", domain.FieldASNOwner)
	p.Organization = f.text("Organization", domain.FieldOrganization)
	p.Longitude = f.text("Longitude", domain.FieldLongitude)
	p.Latitude = f.text("Latitude", domain.FieldLatitude)

	p.IPType = f.choice("IP type", optionNames(domain.IPTypes))
	p.RiskScore = f.score("Risk score (0-100)")
	p.IsNativeIP = f.choice("Native IP", optionNames(domain.NativeIPOptions))
	p.SharedUsers = f.choice("Shared users", optionNames(domain.SharedUsersOptions))

	p.RDNS = f.text("Reverse DNS", domain.FieldRDNS)
	p.CountryFlag = f.text("Country flag (e.g. CN)", domain.FieldCountryFlag)

	if f.aborted {
		fmt.Fprintln(h.out, "\nInput ended, annotation discarded")
		return
	}

	if err := h.svc.AddEntry(ip, p); err != nil {
		fmt.Fprintf(h.out, "Add failed: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "Added annotation for %s\n", ip)
}

// List prints every stored address with its location
func (h *MenuHandler) List() {
	keys := h.svc.ListKeys()
	if len(keys) == 0 {
		fmt.Fprintln(h.out, "\nNo annotations yet")
		return
	}

	fmt.Fprintf(h.out, "\n%d annotations:\n", len(keys))
	for i, ip := range keys {
		entry, _ := h.svc.GetEntry(ip)
		fmt.Fprintf(h.out, "%d. %s - %s\n", i+1, ip, entry.Text(domain.FieldLocationInfo))
	}
}

// Show prints all fields of one annotation
func (h *MenuHandler) Show() {
	ip, ok := h.prompt("IP to show: ")
	if !ok {
		return
	}

	entry, found := h.svc.GetEntry(ip)
	if !found {
		fmt.Fprintf(h.out, "\nNo annotation found for %s\n", ip)
		return
	}

	fmt.Fprintf(h.out, "\nAnnotation for %s:\n", ip)
	for _, field := range entry.Fields() {
		fmt.Fprintf(h.out, "  %s: %s\n", field.Name, entry.Text(field.Name))
	}
}

// Delete removes one annotation
func (h *MenuHandler) Delete() {
	ip, ok := h.prompt("IP to delete: ")
	if !ok {
		return
	}

	if h.svc.RemoveEntry(ip) {
		fmt.Fprintf(h.out, "Deleted annotation for %s\n", ip)
	} else {
		fmt.Fprintf(h.out, "No annotation found for %s\n", ip)
	}
}

// Save writes the store to a file chosen by the operator
func (h *MenuHandler) Save(ctx context.Context) {
	path, ok := h.filePrompt("Save to file")
	if !ok {
		return
	}

	if err := h.svc.Save(ctx, path); err != nil {
		fmt.Fprintf(h.out, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "Saved %d annotations to %s\n", h.svc.Len(), path)
}

// Load replaces the store with a file chosen by the operator
func (h *MenuHandler) Load(ctx context.Context) {
	path, ok := h.filePrompt("Load from file")
	if !ok {
		return
	}

	if err := h.svc.Load(ctx, path); err != nil {
		fmt.Fprintf(h.out, "Load failed, keeping current annotations: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "Loaded %d annotations from %s\n", h.svc.Len(), path)
}

func (h *MenuHandler) filePrompt(label string) (string, bool) {
	path, ok := h.prompt(fmt.Sprintf("%s (default %s): ", label, h.dataFile))
	if !ok {
		return "", false
	}
	if path == "" {
		path = h.dataFile
	}
	return path, true
}

// fieldReader asks for the optional fields of one annotation. Empty
// answers leave a field unspecified unless a suggestion exists for it.
type fieldReader struct {
	h          *MenuHandler
	suggestion geo.Suggestion
	aborted    bool
}

func (f *fieldReader) ask(label string) (string, bool) {
	if f.aborted {
		return "", false
	}
	answer, ok := f.h.prompt(label)
	if !ok {
		f.aborted = true
	}
	return answer, ok
}

func (f *fieldReader) text(label, field string) *string {
	suggested, hasSuggestion := f.suggestion[field]
	if hasSuggestion {
		label = fmt.Sprintf("%s [%s]", label, suggested)
	}

	answer, ok := f.ask(label + ": ")
	if !ok {
		return nil
	}
	if answer == "" {
		if hasSuggestion {
			return &suggested
		}
		return nil
	}
	return &answer
}

func (f *fieldReader) choice(label string, options []string) *string {
	if f.aborted {
		return nil
	}
	fmt.Fprintf(f.h.out, "\n%s options: %s\n", label, strings.Join(options, ", "))

	answer, ok := f.ask(label + ": ")
	if !ok || answer == "" {
		return nil
	}
	for _, option := range options {
		if answer == option {
			return &answer
		}
	}
	fmt.Fprintf(f.h.out, "Unrecognized %s %q ignored\n", strings.ToLower(label), answer)
	return nil
}

func (f *fieldReader) score(label string) *int {
	if f.aborted {
		return nil
	}
	tiers := domain.RiskTiers()
	names := make([]string, len(tiers))
	for i, tier := range tiers {
		names[i] = fmt.Sprintf("%d-%d %s", tier.Min, tier.Max, tier.Level)
	}
	fmt.Fprintf(f.h.out, "\nRisk tiers: %s\n", strings.Join(names, ", "))

	answer, ok := f.ask(label + ": ")
	if !ok || answer == "" {
		return nil
	}
	if !isDigits(answer) {
		fmt.Fprintf(f.h.out, "Risk score %q ignored, expected a whole number\n", answer)
		return nil
	}
	score, err := strconv.Atoi(answer)
	if err != nil || score < 0 || score > 100 {
		fmt.Fprintf(f.h.out, "Risk score %q ignored, expected 0-100\n", answer)
		return nil
	}
	return &score
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func optionNames[T ~string](options []T) []string {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = string(o)
	}
	return names
}
