// Package session holds per-visitor state between requests: language, role, the logged in
// account, the current farmer and the translation cache.
package session

import (
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/translate"
)

// State is one session. Handlers mutate it through its methods, which mark it for saving.
type State struct {
	ID            string                `json:"id"`
	Language      string                `json:"language"`
	Role          model.Role            `json:"role"`
	Shop          *model.VetShop        `json:"shop,omitempty"`
	Doctor        *model.VetDoctor      `json:"doctor,omitempty"`
	CurrentFarmer *model.FarmerSnapshot `json:"current_farmer,omitempty"`
	Translations  map[string]string     `json:"translations,omitempty"`

	dirty bool
}

var _ translate.Cache = (*State)(nil)

// NewState returns an anonymous session in the default language.
func NewState(id string) *State {
	return &State{
		ID:           id,
		Language:     model.DefaultLanguage,
		Translations: map[string]string{},
		dirty:        true,
	}
}

func (s *State) Dirty() bool { return s.dirty }

func (s *State) Authenticated() bool {
	switch s.Role {
	case model.RoleVetShop:
		return s.Shop != nil
	case model.RoleVetDoctor:
		return s.Doctor != nil
	}
	return false
}

// Account returns the logged in record, *model.VetShop or *model.VetDoctor, or nil.
func (s *State) Account() interface{} {
	switch {
	case s.Role == model.RoleVetShop && s.Shop != nil:
		return s.Shop
	case s.Role == model.RoleVetDoctor && s.Doctor != nil:
		return s.Doctor
	}
	return nil
}

// Phone of the logged in account, empty when anonymous.
func (s *State) Phone() string {
	switch {
	case s.Role == model.RoleVetShop && s.Shop != nil:
		return s.Shop.Phone
	case s.Role == model.RoleVetDoctor && s.Doctor != nil:
		return s.Doctor.Phone
	}
	return ""
}

// Location of the logged in account, empty when anonymous.
func (s *State) Location() string {
	switch {
	case s.Role == model.RoleVetShop && s.Shop != nil:
		return s.Shop.Location
	case s.Role == model.RoleVetDoctor && s.Doctor != nil:
		return s.Doctor.Location
	}
	return ""
}

func (s *State) LoginShop(shop *model.VetShop) {
	s.Role = model.RoleVetShop
	s.Shop = shop
	s.Doctor = nil
	s.CurrentFarmer = nil
	s.dirty = true
}

func (s *State) LoginDoctor(doctor *model.VetDoctor) {
	s.Role = model.RoleVetDoctor
	s.Doctor = doctor
	s.Shop = nil
	s.CurrentFarmer = nil
	s.dirty = true
}

// Logout forgets the account and the current farmer. Language and translations stay.
func (s *State) Logout() {
	s.Role = model.RoleNone
	s.Shop = nil
	s.Doctor = nil
	s.CurrentFarmer = nil
	s.dirty = true
}

func (s *State) SetLanguage(code string) {
	if s.Language == code {
		return
	}
	s.Language = code
	s.dirty = true
}

// SetCurrentFarmer replaces the farmer attached to subsequent queries.
func (s *State) SetCurrentFarmer(f *model.FarmerSnapshot) {
	s.CurrentFarmer = f
	s.dirty = true
}

func (s *State) Lookup(text, lang string) (string, bool) {
	v, ok := s.Translations[translate.CacheKey(text, lang)]
	return v, ok
}

func (s *State) Store(text, lang, translated string) {
	if s.Translations == nil {
		s.Translations = map[string]string{}
	}
	s.Translations[translate.CacheKey(text, lang)] = translated
	s.dirty = true
}
