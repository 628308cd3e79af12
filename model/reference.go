package model

// Collection names shared by every store backend.
const (
	CollectionVetShops       = "vet_shops"
	CollectionVetDoctors     = "vet_doctors"
	CollectionFarmers        = "farmers"
	CollectionDiseaseQueries = "disease_queries"
	CollectionActivityLogs   = "activity_logs"
)

// Districts is the fixed list offered by the browse screens.
var Districts = []string{"Erode", "Salem", "Namakkal", "Coimbatore", "Madurai", "Tirupur"}

// Species the prediction tool accepts.
var Species = []string{"Pig", "Poultry"}

const (
	MinDaysNotWell = 1
	MaxDaysNotWell = 60
)

// Language is one entry of the language selector.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

const DefaultLanguage = "en"

// Languages keeps the selector order.
var Languages = []Language{
	{Name: "English", Code: "en"},
	{Name: "தமிழ்", Code: "ta"},
	{Name: "हिंदी", Code: "hi"},
}

// LookupLanguage resolves a language code or display name to its code.
func LookupLanguage(s string) (string, bool) {
	for _, l := range Languages {
		if s == l.Code || s == l.Name {
			return l.Code, true
		}
	}
	switch s {
	case "Tamil", "tamil":
		return "ta", true
	case "Hindi", "hindi":
		return "hi", true
	case "english":
		return "en", true
	}
	return "", false
}

func IsDistrict(s string) bool { return contains(Districts, s) }

func IsSpecies(s string) bool { return contains(Species, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
