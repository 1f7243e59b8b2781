package penalty

import (
	"regexp"

	"github.com/jmylchreest/rowdata/pkg/lemma"
)

// subject captures the (optional) crew a clause talks about.
const subject = `^(?:(.*?) )?`

const disqualifiedBy = `(?:FUE |HA SIDO )?(?:DESCALIFICAD[OA] )?`

func templates(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func tuples(words ...[]string) []lemma.Set {
	out := make([]lemma.Set, len(words))
	for i, w := range words {
		out[i] = lemma.Tuple(w...)
	}
	return out
}

type routeRule struct {
	reason    Reason
	templates []*regexp.Regexp
}

// routeTuples gate the route rules: a clause must mention one of these
// before any route template is tried.
var routeTuples = tuples(
	[]string{"ciabogar", "estribor"},
	[]string{"estribor", "meta"},
	[]string{"boya", "estribor"},
	[]string{"ciaboga", "incorrecto"},
	[]string{"cruzarse", "calle"},
	[]string{"invadir", "calle"},
	[]string{"salir", "calle"},
	[]string{"fuera", "campo"},
	[]string{"salir", "campo"},
	[]string{"abandonar", "campo"},
)

var routeRules = []routeRule{
	{OffTheField, templates(
		subject+disqualifiedBy+`(?:POR )?(?:SALIR|SALIRSE|QUEDAR|QUEDARSE|BOGAR|NAVEGAR) (?:FUERA DEL|DEL) CAMPO`,
		subject+`(?:ABANDON[ÓO] EL|SE SALI[ÓO] DEL|SALI[ÓO] DEL|QUED[ÓO] FUERA DEL) CAMPO`,
	)},
	{StarboardTack, templates(
		subject+disqualifiedBy+`(?:POR )?(?:CIABOGAR|REALIZAR LA CIABOGA|TOMAR LA CIABOGA|DEJAR LA BOYA) (?:POR|A) ESTRIBOR`,
		subject+`(?:CIABOG[ÓO]|REALIZ[ÓO] LA CIABOGA|TOM[ÓO] LA CIABOGA|DEJ[ÓO] LA BOYA) (?:POR|A) ESTRIBOR`,
		subject+`(?:ENTR[ÓO]|CRUZ[ÓO]) (?:EN )?(?:LA )?META POR ESTRIBOR`,
	)},
	{WrongRoute, templates(
		subject+disqualifiedBy+`POR (?:CRUZARSE DE|INVADIR LA|INVADIR OTRA|SALIRSE DE LA|SALIRSE DE SU) CALLE`,
		subject+`(?:SE CRUZ[ÓO] DE|INVADI[ÓO] LA|INVADI[ÓO] OTRA|SE SALI[ÓO] DE LA|SE SALI[ÓO] DE SU) CALLE`,
		subject+`(?:REALIZ[ÓO]|HIZO|TOM[ÓO]) (?:LA |UNA )?CIABOGA (?:INCORRECTA|INCORRECTAMENTE|DE FORMA INCORRECTA)`,
		subject+disqualifiedBy+`POR (?:REALIZAR|HACER|TOMAR) (?:LA |UNA )?CIABOGA (?:INCORRECTA|INCORRECTAMENTE|DE FORMA INCORRECTA)`,
	)},
}

type genericRule struct {
	reason    Reason
	tuples    []lemma.Set
	templates []*regexp.Regexp
}

var genericRules = []genericRule{
	{
		BoatWeightLimit,
		tuples([]string{"peso", "trainera"}, []string{"peso", "embarcación"}, []string{"peso", "bote"}),
		templates(
			subject+disqualifiedBy+`POR (?:NO DAR EL|FALTA DE|FALTARLE) PESO (?:A|DE|EN) (?:LA|SU) (?:TRAINERA|EMBARCACI[ÓO]N|BOTE)`,
			subject+`NO DIO EL PESO (?:EN|CON) (?:LA|SU) (?:TRAINERA|EMBARCACI[ÓO]N|BOTE)`,
			`^(?:LA )?(?:TRAINERA|EMBARCACI[ÓO]N|BOTE) DE (.*?) NO DIO EL PESO`,
		),
	},
	{
		Collision,
		tuples([]string{"colisionar"}),
		templates(
			subject+`(?:SE RETIR[ÓO]|ABANDON[ÓO]|FUE DESCALIFICAD[OA]) (?:POR|TRAS) (?:COLISIONAR|CHOCAR|UNA COLISI[ÓO]N|UN ABORDAJE|UN CHOQUE)`,
			subject+disqualifiedBy+`POR (?:COLISIONAR|CHOCAR|ABORDAR|PROVOCAR UNA COLISI[ÓO]N|PROVOCAR UN ABORDAJE|PROVOCAR UN CHOQUE)`,
			subject+`(?:COLISION[ÓO]|CHOC[ÓO]|ABORD[ÓO]|PROVOC[ÓO] UNA COLISI[ÓO]N|PROVOC[ÓO] UN ABORDAJE|PROVOC[ÓO] UN CHOQUE)`,
		),
	},
	{
		CoxwainWeightLimit,
		tuples([]string{"peso", "patrón"}, []string{"peso", "timonel"}),
		templates(
			subject+disqualifiedBy+`POR (?:NO DAR EL|FALTA DE|FALTARLE) PESO (?:A|DE|DEL|EN EL|DE SU|A SU) (?:PATR[ÓO]N|TIMONEL)`,
			`^(?:EL )?(?:PATR[ÓO]N|TIMONEL) DE (.*?) NO DIO EL PESO`,
			subject+`NO DIO EL PESO (?:EN|CON) (?:EL|SU) (?:PATR[ÓO]N|TIMONEL)`,
		),
	},
	{
		Doping,
		tuples([]string{"dopaje"}, []string{"antidopaje"}, []string{"positivo", "control"}),
		templates(
			subject+disqualifiedBy+`POR (?:DOPAJE|UN POSITIVO|POSITIVO)`,
			`^(?:UN |UNA )?(?:REMERO|REMERA) DE (.*?) DIO POSITIVO`,
			subject+`DIO POSITIVO`,
		),
	},
	{
		LackOfCompetitiveness,
		tuples([]string{"falta", "competitividad"}, []string{"no", "competir"}, []string{"no", "compitió"}),
		templates(
			subject+disqualifiedBy+`POR (?:FALTA DE COMPETITIVIDAD|NO COMPETIR)`,
			subject+`NO COMPITI[ÓO]`,
		),
	},
	{
		NoLineStart,
		tuples([]string{"no", "salida", "línea"}, []string{"salir", "detrás", "línea"}),
		templates(
			subject+disqualifiedBy+`POR NO (?:SALIR|TOMAR LA SALIDA) (?:DESDE|EN) LA L[ÍI]NEA`,
			subject+`NO (?:SALI[ÓO]|TOM[ÓO] LA SALIDA) (?:DESDE|EN) LA L[ÍI]NEA`,
			subject+disqualifiedBy+`(?:POR )?SALIR (?:POR )?DETR[ÁA]S DE LA L[ÍI]NEA`,
		),
	},
	{
		NullStart,
		tuples([]string{"salida", "nulo"}),
		templates(
			subject+disqualifiedBy+`POR (?:DOS |2 |UNA )?SALIDAS? NULAS?`,
			subject+`(?:HIZO|COMETI[ÓO]|PROVOC[ÓO]|TUVO) (?:DOS |2 |UNA )?SALIDAS? NULAS?`,
		),
	},
	{
		Sinking,
		tuples([]string{"hundir"}, []string{"entrar", "agua"}),
		templates(
			subject+`(?:SE RETIR[ÓO]|SE HUNDI[ÓO]|FUE DESCALIFICAD[OA]|ABANDON[ÓO]) POR (?:ENTRAR(?:LE)? AGUA|HUNDIMIENTO|HUNDIRSE)`,
			`^(?:A )?(.*?) LE ENTR[ÓO] AGUA`,
			subject+`SE HUNDI[ÓO]`,
		),
	},
	{
		WrongLineup,
		tuples([]string{"alineación", "indebido"}, []string{"alineación", "incorrecto"}, []string{"remero", "no", "inscrito"}),
		templates(
			subject+disqualifiedBy+`POR (?:ALINEACI[ÓO]N (?:INDEBIDA|INCORRECTA)|ALINEAR (?:A )?UN REMERO NO INSCRITO)`,
			subject+`(?:ALINE[ÓO]|PRESENT[ÓO]) (?:A )?UN REMERO NO INSCRITO`,
		),
	},
}

// unknownTemplates run against the raw note when nothing else matched.
var unknownTemplates = templates(
	`(?i)^(.*) fue descalificad[oa]`,
	`(?i)^(.*) (?:ha sido|result[óo]|qued[óo]) descalificad[oa]`,
	`(?i)^descalificad[oa] (?:el equipo de |la tripulaci[óo]n de )?(.*?)(?: por .*)?\.?$`,
)
