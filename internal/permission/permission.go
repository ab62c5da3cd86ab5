// Package permission models a role's capabilities as module -> ordered action set.
package permission

import (
	"encoding/json"
	"strings"
)

// Modules
const (
	ModuleArticles   = "articles"
	ModuleCategories = "categories"
	ModuleTags       = "tags"
	ModuleUsers      = "users"
)

// Actions
const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionSubmit  = "submit"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionPublish = "publish"
)

// Set maps a module name to its granted actions, in grant order, without duplicates.
// A nil or empty Set authorizes nothing.
type Set map[string][]string

// Parse decodes a permission document of the form {"module": ["action", ...]}.
// Malformed input yields an empty Set.
func Parse(raw []byte) Set {
	if len(raw) == 0 {
		return Set{}
	}
	var decoded map[string][]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Set{}
	}
	s := make(Set, len(decoded))
	for module, actions := range decoded {
		for _, a := range actions {
			s.Grant(module, a)
		}
	}
	return s
}

// Grant adds action to module, keeping order and ignoring duplicates and blanks
func (s Set) Grant(module, action string) {
	if module == "" || action == "" {
		return
	}
	for _, existing := range s[module] {
		if existing == action {
			return
		}
	}
	s[module] = append(s[module], action)
}

// Has reports whether module grants action. Matching is exact.
func (s Set) Has(module, action string) bool {
	for _, a := range s[module] {
		if a == action {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the "module:action" references is granted.
// References without a colon never match.
func (s Set) HasAny(refs ...string) bool {
	for _, ref := range refs {
		module, action, ok := SplitRef(ref)
		if ok && s.Has(module, action) {
			return true
		}
	}
	return false
}

// SplitRef splits a "module:action" reference
func SplitRef(ref string) (module, action string, ok bool) {
	module, action, ok = strings.Cut(ref, ":")
	if !ok || module == "" || action == "" {
		return "", "", false
	}
	return module, action, true
}

// Ref builds a "module:action" reference
func Ref(module, action string) string {
	return module + ":" + action
}

// JSON encodes the set for storage
func (s Set) JSON() json.RawMessage {
	if s == nil {
		return json.RawMessage("{}")
	}
	b, err := json.Marshal(map[string][]string(s))
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}
