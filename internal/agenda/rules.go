package agenda

// ArteBayamoCalendar is the fixed per-weekday subject grid of the cultural
// program. Assigned to the program's TopicCalendar at seed time.
var ArteBayamoCalendar = map[string]string{
	"Lunes":     "Audiovisuales",
	"Martes":    "Artes Plásticas",
	"Miércoles": "Literatura",
	"Jueves":    "Música",
	"Viernes":   "Artes Escénicas",
}

// JuanaCalendar is the fixed per-weekday editorial line of the
// family-magazine program.
var JuanaCalendar = map[string]string{
	"Lunes":     "Sexualidad y Familia",
	"Martes":    "Tema Jurídico",
	"Miércoles": "Variado / Social",
	"Jueves":    "Historia y Política",
	"Viernes":   "Jurídico o Variado",
}

// culturalSubjects marks the fixed-calendar subjects that belong to the
// arts grid; their instructions bind the subject to the day's cultural
// efemérides instead of following an editorial line.
var culturalSubjects = map[string]bool{
	"Audiovisuales":   true,
	"Artes Plásticas": true,
	"Literatura":      true,
	"Música":          true,
	"Artes Escénicas": true,
	"Cultura General": true,
}

// culturalKeywords bind an efeméride to the fixed-calendar cultural
// subjects: when one appears in the day's events, the instruction ties the
// subject to that event.
var culturalKeywords = []string{"cine", "libro", "música", "teatro", "pintor", "artista", "cultura"}

// topicInstructions provides the per-topic editorial directive appended to
// fixed-calendar instructions. Matched by substring on the topic name.
var topicInstructions = []struct {
	contains    string
	instruction string
}{
	{"Sexualidad", "Abordar educación sexual, pareja o dinámica familiar."},
	{"Jurídico", "Tratar leyes vigentes, constitución o derechos ciudadanos."},
}

// genericTopicInstruction is used when no per-topic directive applies.
const genericTopicInstruction = "Buscar especialista o comentario de bien público para la familia."
