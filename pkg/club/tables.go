package club

import "regexp"

type title struct {
	text    string
	pattern *regexp.Regexp
}

func newTitle(text string) title {
	return title{
		text:    text,
		pattern: regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(text) + `(\s|$)`),
	}
}

// Long phrases go first so that "CLUB DE REMO" is not left as "DE REMO"
// after "CLUB" is stripped.
var titles = []title{
	newTitle("SOCIEDAD DEPORTIVA DE REMO"),
	newTitle("SOCIEDAD DEPORTIVA"),
	newTitle("SOCIEDAD DE REMO"),
	newTitle("SOCIEDAD CULTURAL RECREATIVA"),
	newTitle("ASOCIACION DEPORTIVA"),
	newTitle("ASOCIACIÓN DEPORTIVA"),
	newTitle("AGRUPACION DEPORTIVA"),
	newTitle("AGRUPACIÓN DEPORTIVA"),
	newTitle("CLUB DE REMO"),
	newTitle("CLUB DEPORTIVO"),
	newTitle("CLUB NAUTICO"),
	newTitle("CLUB NÁUTICO"),
	newTitle("CLUB DE MAR"),
	newTitle("ARRAUN ELKARTEA"),
	newTitle("ARRAUN KLUBA"),
	newTitle("ARRAUN LAGUNAK"),
	newTitle("ARRAUN TALDEA"),
	newTitle("CLUB"),
	newTitle("CRN"),
	newTitle("CDR"),
	newTitle("SDR"),
	newTitle("SCR"),
	newTitle("CR"),
	newTitle("SD"),
	newTitle("CD"),
	newTitle("CN"),
	newTitle("CM"),
	newTitle("AD"),
	newTitle("AE"),
	newTitle("AKE"),
	newTitle("ARC"),
}

// titleExceptions lists names that legitimately contain a title phrase.
// "ARRAUN LAGUNAK" is the club of Donostia, elsewhere it is a suffix.
var titleExceptions = map[string][]string{
	"ARRAUN LAGUNAK": {"DONOSTIA ARRAUN LAGUNAK", "ARRAUN LAGUNAK DONOSTIA"},
	"CLUB DE MAR":    {"CLUB DE MAR SAN AMARO"},
}

// Sponsors are removed as substrings; they are glued to names verbatim.
var sponsors = []string{
	"BERTAKO IGOGAILUAK",
	"BIZKAIKO FORU ALDUNDIA",
	"GENERAL DYNAMICS",
	"JAMONES ANCIN",
	"QUALITY MOTORS",
	"PRIME LINE",
	"CAJA RURAL",
	"CAIXA GALICIA",
	"CAIXANOVA",
	"NORTEGAS",
	"AMENABAR",
	"ELECNOR",
	"MEDIASPAIN",
	"TERNUA",
	"UNICAJA",
	"BEREZ",
}

type alias struct {
	canonical string
	variants  []string
}

// Every canonical name must map onto itself, or Normalize stops being
// idempotent.
var aliases = []alias{
	{"PASAI DONIBANE KOXTAPE", []string{"PASAI DONIBANE KOXTAPE", "PASAI DONIBANE", "KOXTAPE", "SAN JUAN"}},
	{"DONOSTIA ARRAUN LAGUNAK", []string{"DONOSTIA ARRAUN LAGUNAK", "ARRAUN LAGUNAK DONOSTIA"}},
	{"HONDARRIBIA", []string{"HONDARRIBIKO", "FUENTERRABIA"}},
	{"SANTURTZI", []string{"SANTURCE"}},
	{"ZARAUTZ", []string{"ZARAUZ"}},
	{"GETARIA", []string{"GUETARIA"}},
	{"ONDARROA", []string{"ONDARRU"}},
	{"BERMEO", []string{"URDAIBAI"}},
	{"ORIO", []string{"ORIOKO"}},
	{"KAIKU", []string{"SESTAO"}},
	{"CASTRO URDIALES", []string{"CASTRO URDIALES", "CASTREÑA", "CASTRO"}},
	{"CABO DA CRUZ", []string{"CABO DA CRUZ", "CABO DE CRUZ"}},
	{"VILAXOAN", []string{"VILAXOÁN"}},
	{"PEDREÑA", []string{"PEDRENA"}},
	{"TIRAN", []string{"TIRÁN"}},
	{"A CABANA", []string{"A CABANA", "CABANA"}},
}
