package name

// Name is a candidate as delivered by the name source.
type Name struct {
	UID      string `json:"uid"`
	FullName string `json:"fullName"`
}

// DisplayName joins a Name with its current liked/used flags.
// It is rebuilt on every load and never stored.
type DisplayName struct {
	UID      string `json:"uid"`
	FullName string `json:"fullName"`
	Liked    bool   `json:"liked"`
	Used     bool   `json:"used"`
}

// List is the view model handed to clients.
type List struct {
	Names []DisplayName `json:"names"`
}

// NewList wraps names, normalising nil to an empty slice so it encodes as [].
func NewList(names []DisplayName) List {
	if names == nil {
		names = []DisplayName{}
	}
	return List{Names: names}
}

// Find returns the entry for uid, if present.
func (l List) Find(uid string) (DisplayName, bool) {
	for _, item := range l.Names {
		if item.UID == uid {
			return item, true
		}
	}
	return DisplayName{}, false
}
