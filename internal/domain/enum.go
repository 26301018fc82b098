package domain

// IPType classifies the network an address belongs to
type IPType string

const (
	IPTypeResidential IPType = "Residential broadband IP"
	IPTypeDatacenter  IPType = "Datacenter (IDC) IP"
	IPTypePending     IPType = PlaceholderDetecting
)

// IPTypes lists the values an operator may assign
var IPTypes = []IPType{IPTypeResidential, IPTypeDatacenter}

// ParseIPType returns the matching IPType for an exact match
func ParseIPType(s string) (IPType, bool) {
	for _, t := range IPTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// NativeIP tells whether an address is registered where it is used
type NativeIP string

const (
	NativeIPNative    NativeIP = "Native IP"
	NativeIPBroadcast NativeIP = "Broadcast IP"
	NativeIPPending   NativeIP = PlaceholderDetecting
)

// NativeIPOptions lists the values an operator may assign
var NativeIPOptions = []NativeIP{NativeIPNative, NativeIPBroadcast}

// ParseNativeIP returns the matching NativeIP for an exact match
func ParseNativeIP(s string) (NativeIP, bool) {
	for _, n := range NativeIPOptions {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// SharedUsers buckets the estimated number of users behind one address
type SharedUsers string

const (
	SharedUsersFew       SharedUsers = "1-10 (excellent)"
	SharedUsersSome      SharedUsers = "10-100 (fair)"
	SharedUsersMany      SharedUsers = "100-1000 (risky)"
	SharedUsersCrowd     SharedUsers = "1000-10000 (high risk)"
	SharedUsersMassive   SharedUsers = "10000+ (extreme risk)"
	SharedUsersDetecting SharedUsers = PlaceholderDetecting
)

// SharedUsersOptions is in display order. Unlike the other enumerations the
// pending value is itself selectable.
var SharedUsersOptions = []SharedUsers{
	SharedUsersFew,
	SharedUsersSome,
	SharedUsersMany,
	SharedUsersCrowd,
	SharedUsersMassive,
	SharedUsersDetecting,
}

// ParseSharedUsers returns the matching bucket for an exact match
func ParseSharedUsers(s string) (SharedUsers, bool) {
	for _, u := range SharedUsersOptions {
		if string(u) == s {
			return u, true
		}
	}
	return "", false
}
