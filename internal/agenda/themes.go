package agenda

// MandatoryThemes is the curated rotation of campaign topics. Each theme
// appears at most once across a generated week's Monday-Friday slots, in
// this order of priority.
var MandatoryThemes = []string{
	"Tarea Vida (Medio Ambiente)",
	"Adelanto de las Mujeres",
	"Soberanía Alimentaria",
	"Legado de Fidel Castro",
	"Lucha contra las Drogas",
}

// ThemeKeywords binds each mandatory theme to the words that, found in an
// efeméride's label or description, mark the day as a match for the theme.
// Matching is case and diacritics insensitive.
var ThemeKeywords = map[string][]string{
	"Tarea Vida (Medio Ambiente)": {"ambiente", "naturaleza", "agua", "tierra", "forestal", "clima", "ciencia", "planeta"},
	"Adelanto de las Mujeres":     {"mujer", "fmc", "vilma", "mariana", "género", "madre", "federada"},
	"Soberanía Alimentaria":       {"agricultura", "campesino", "anap", "cooperativa", "azúcar", "zafra", "alimento", "siembra"},
	"Legado de Fidel Castro":      {"fidel", "comandante", "líder", "revolución", "moncada", "granma", "sierra"},
	"Lucha contra las Drogas":     {"salud", "droga", "vicio", "higiene", "médico", "enfermera", "prevención"},
}

// FallbackTheme fills weekdays left over once the mandatory pool runs dry.
const FallbackTheme = "Temática Libre / Actualidad Bayamesa"

// historyDescriptionKeywords flag an efeméride as historically significant
// from its description; historyLabelKeywords do the same from the short
// label. Such days get a synthesized "Historia: ..." theme when no
// mandatory theme matches.
var (
	historyDescriptionKeywords = []string{
		"céspedes", "martí", "maceo", "guerra", "batalla", "fundación", "aniversario", "natalicio",
	}
	historyLabelKeywords = []string{"aniversario", "natalicio"}
)
