// Package data holds the station's static seed data: the program grid of
// Radio Ciudad Monumento and the historical calendar records. The data is
// maintained manually and updated when the programming changes.
package data

import "github.com/rcmonumento/agenda-go/internal/agenda"

// weekdaysMonFri is the standard Monday-Friday air pattern.
var weekdaysMonFri = agenda.AirDays{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

// Programs is the station grid. IDs are stable slugs referenced by stored
// content rows; renaming a program must keep its ID.
var Programs = []agenda.Program{
	// ============================================
	// Lunes a Viernes
	// ============================================
	{
		ID:       "buenos-dias-bayamo",
		Name:     "Buenos Días, Bayamo",
		Time:     "07:00",
		Days:     weekdaysMonFri,
		Active:   true,
		Category: agenda.CategoryNews,
	},
	{
		ID:       "todos-en-casa",
		Name:     "Todos en Casa",
		Time:     "10:00",
		Days:     weekdaysMonFri,
		Active:   true,
		Category: agenda.CategoryLifestyle,
	},
	{
		ID:       "noticiero",
		Name:     "Noticiero (RCM Noticias)",
		Time:     "11:00",
		Days:     weekdaysMonFri,
		Active:   true,
		Category: agenda.CategoryNews,
	},
	{
		ID:            "arte-bayamo",
		Name:          "Arte Bayamo",
		Time:          "11:15",
		Days:          weekdaysMonFri,
		Active:        true,
		Category:      agenda.CategoryFixedCalendar,
		TopicCalendar: agenda.ArteBayamoCalendar,
	},
	{
		ID:       "parada-joven",
		Name:     "Parada Joven",
		Time:     "12:30",
		Days:     weekdaysMonFri,
		Active:   true,
		Category: agenda.CategoryYouth,
	},
	{
		ID:            "hablando-con-juana",
		Name:          "Hablando con Juana",
		Time:          "13:30",
		Days:          weekdaysMonFri,
		Active:        true,
		Category:      agenda.CategoryFixedCalendar,
		TopicCalendar: agenda.JuanaCalendar,
	},

	// ============================================
	// Sábado
	// ============================================
	{
		ID:       "buenos-dias-bayamo-sabado",
		Name:     "Buenos Días, Bayamo (Sábado)",
		Time:     "07:00",
		Days:     agenda.AirDays{"Sábado"},
		Active:   true,
		Category: agenda.CategoryNews,
	},
	{
		ID:       "noticiero-sabado",
		Name:     "Noticiero Sabatino",
		Time:     "11:00",
		Days:     agenda.AirDays{"Sábado"},
		Active:   true,
		Category: agenda.CategoryNews,
	},
	{
		ID:       "sigue-a-tu-ritmo",
		Name:     "Sigue a tu ritmo",
		Time:     "11:15",
		Days:     agenda.AirDays{"Sábado"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
	{
		ID:       "al-son-de-la-radio",
		Name:     "Al son de la radio",
		Time:     "13:30",
		Days:     agenda.AirDays{"Sábado"},
		Active:   true,
		Category: agenda.CategorySingleGenre,
		Genre:    "Son Cubano",
	},

	// ============================================
	// Domingo
	// ============================================
	{
		ID:       "boletin",
		Name:     "Boletín",
		Time:     "07:00",
		Days:     agenda.AirDays{"Domingo"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
	{
		ID:       "complices",
		Name:     "Cómplices",
		Time:     "07:05",
		Days:     agenda.AirDays{"Domingo"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
	{
		ID:       "coloreando-melodias",
		Name:     "Coloreando Melodías",
		Time:     "09:00",
		Days:     agenda.AirDays{"Domingo"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
	{
		ID:       "alba-y-crisol",
		Name:     "Alba y crisol",
		Time:     "09:30",
		Days:     agenda.AirDays{"Domingo"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
	{
		ID:       "estacion-95-3",
		Name:     "Estación 95.3",
		Time:     "10:00",
		Days:     agenda.AirDays{"Domingo"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
	{
		ID:       "palco-de-domingo",
		Name:     "Palco de Domingo",
		Time:     "13:30",
		Days:     agenda.AirDays{"Domingo"},
		Active:   true,
		Category: agenda.CategoryGeneral,
	},
}
