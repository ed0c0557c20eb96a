package agenda

import (
	"fmt"
	"strings"

	"github.com/rcmonumento/agenda-go/internal/stringutil"
)

// GenerateProgramContent derives the theme and production instructions for
// one program airing on one day, dispatching on the program's category
// tag. The ideas field is always left empty: it is filled later by a human
// or the generative-text collaborator, and partial edits must not clobber
// it once set.
func GenerateProgramContent(p Program, day DayInfo, centralTheme, month string, idx *EventIndex) DailyContent {
	events := idx.EventsOnDay(month, day.Date)

	switch p.Category {
	case CategoryLifestyle:
		return lifestyleContent()
	case CategoryFixedCalendar:
		return fixedCalendarContent(p, day, events)
	case CategoryYouth:
		return youthContent()
	case CategorySingleGenre:
		return singleGenreContent(p)
	case CategoryNews:
		return newsContent(centralTheme, events)
	default:
		return generalContent(day, centralTheme)
	}
}

// lifestyleContent keeps the program on home/family ground; by editorial
// rule it never follows the political or efeméride-driven central theme.
func lifestyleContent() DailyContent {
	return DailyContent{
		Theme:        "Hogar y Familia",
		Instructions: "Abordar temas prácticos de convivencia, salud doméstica, cocina o trucos del hogar. Mantener tono ligero y útil. Evitar efemérides políticas densas.",
	}
}

// fixedCalendarContent looks up the weekday in the program's static topic
// table and binds the subject to a matching efeméride when one exists.
func fixedCalendarContent(p Program, day DayInfo, events []Efemeride) DailyContent {
	topic, ok := p.TopicCalendar[day.Name]
	if !ok {
		topic = "Cultura General"
	}

	// Cultural grids tie the subject to the day's cultural events.
	if culturalSubjects[topic] {
		if e, found := culturalEvent(events); found {
			return DailyContent{
				Theme:        topic,
				Instructions: fmt.Sprintf("Vincular la manifestación (%s) con la efeméride: %s. Comentar obra, autor o impacto cultural.", topic, e.Label),
			}
		}
		return DailyContent{
			Theme:        topic,
			Instructions: fmt.Sprintf("Desarrollar contenido sobre %s con enfoque local o nacional. Promover artistas bayameses o agenda cultural de la ciudad.", topic),
		}
	}

	instructions := fmt.Sprintf("Seguir línea editorial de %s. ", topic)
	if strings.Contains(topic, "Historia") && len(events) > 0 {
		instructions += fmt.Sprintf("Aprovechar efeméride: %s.", events[0].Label)
	} else {
		instructions += topicInstruction(topic)
	}
	return DailyContent{Theme: topic, Instructions: instructions}
}

func youthContent() DailyContent {
	return DailyContent{
		Theme:        "Mundo Juvenil",
		Instructions: "Enfocar en formación vocacional, recreación sana, psicología juvenil o uso de tecnologías. Si hay efemérides estudiantiles (FEEM/FEU), vincularlas.",
	}
}

// singleGenreContent never varies by day: the program's fixed genre is the
// theme, and the instruction keeps the space strictly on it.
func singleGenreContent(p Program) DailyContent {
	genre := p.Genre
	if genre == "" {
		genre = "Género Musical"
	}
	return DailyContent{
		Theme:        genre,
		Instructions: fmt.Sprintf("Centrarse estrictamente en %s: historia, grandes exponentes, agrupaciones actuales, o análisis de ritmo y letra. No desviar a otros géneros.", genre),
	}
}

// newsContent inherits the day's central theme; when an efeméride backs
// the theme the instruction cites it explicitly.
func newsContent(centralTheme string, events []Efemeride) DailyContent {
	if centralTheme == "" {
		centralTheme = "Actualidad"
	}
	for _, e := range events {
		if strings.Contains(centralTheme, e.Label) || strings.Contains(centralTheme, "Historia") {
			return DailyContent{
				Theme:        centralTheme,
				Instructions: fmt.Sprintf("Cobertura informativa sobre: %s (%s). Resaltar impacto histórico y vigencia.", e.Label, e.Description),
			}
		}
	}
	return DailyContent{
		Theme:        centralTheme,
		Instructions: fmt.Sprintf("Desarrollar la línea de %q con reportajes, entrevistas o datos actuales de la provincia Granma.", centralTheme),
	}
}

// generalContent is the default ruleset: Sundays are free/variety, the
// rest of the week adapts the central theme to the program's profile.
func generalContent(day DayInfo, centralTheme string) DailyContent {
	if day.Name == "Domingo" {
		return DailyContent{
			Theme:        "Dominical / Variado",
			Instructions: "Contenido ameno, histórico o musical según perfil del espacio.",
		}
	}
	if centralTheme == "" {
		centralTheme = "Actualidad"
	}
	return DailyContent{
		Theme:        centralTheme,
		Instructions: "Adaptar temática del día al perfil específico del programa, manteniendo el interés local.",
	}
}

// culturalEvent finds the first efeméride whose description touches one of
// the cultural keyword categories.
func culturalEvent(events []Efemeride) (Efemeride, bool) {
	for _, e := range events {
		for _, keyword := range culturalKeywords {
			if stringutil.FoldContains(e.Description, keyword) {
				return e, true
			}
		}
	}
	return Efemeride{}, false
}

func topicInstruction(topic string) string {
	for _, ti := range topicInstructions {
		if strings.Contains(topic, ti.contains) {
			return ti.instruction
		}
	}
	return genericTopicInstruction
}
