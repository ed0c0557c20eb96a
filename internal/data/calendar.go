package data

import "github.com/rcmonumento/agenda-go/internal/agenda"

// Efemerides holds the curated historical calendar, keyed by month name.
// Labels are the short form cited in instructions; descriptions carry the
// keywords the assignment rules match against.
var Efemerides = agenda.EfemeridesData{
	"Enero": {
		{Day: 1, Label: "1959", Description: "Triunfo de la Revolución Cubana"},
		{Day: 12, Label: "Incendio de Bayamo", Description: "Aniversario del incendio de Bayamo, gesto heroico de sus habitantes durante la guerra"},
		{Day: 28, Label: "Natalicio de Martí", Description: "Natalicio de José Martí, Héroe Nacional de Cuba"},
	},
	"Febrero": {
		{Day: 24, Label: "Grito de Baire", Description: "Reinicio de la guerra de independencia organizada por José Martí"},
	},
	"Marzo": {
		{Day: 8, Label: "Día de la Mujer", Description: "Día Internacional de la Mujer, jornada de la FMC por el adelanto de la mujer cubana"},
		{Day: 13, Label: "Asalto al Palacio", Description: "Aniversario del asalto al Palacio Presidencial"},
	},
	"Abril": {
		{Day: 4, Label: "Aniversario UJC", Description: "Aniversario de la Unión de Jóvenes Comunistas y de la organización de pioneros"},
		{Day: 19, Label: "Victoria de Girón", Description: "Aniversario de la victoria de Playa Girón, primera derrota del imperialismo en América"},
	},
	"Mayo": {
		{Day: 1, Label: "Día del Trabajador", Description: "Día Internacional de los Trabajadores"},
		{Day: 11, Label: "Muerte en combate", Description: "Caída en combate del Mayor General Ignacio Agramonte"},
		{Day: 19, Label: "Caída de Martí", Description: "Aniversario de la caída en combate de José Martí en Dos Ríos"},
	},
	"Junio": {
		{Day: 5, Label: "Medio Ambiente", Description: "Día Mundial del Medio Ambiente, jornada por la naturaleza y el planeta"},
		{Day: 14, Label: "Natalicio de Maceo", Description: "Natalicio de Antonio Maceo y de Ernesto Che Guevara"},
	},
	"Julio": {
		{Day: 26, Label: "Asalto al Moncada", Description: "Aniversario del asalto al cuartel Moncada dirigido por Fidel Castro"},
	},
	"Agosto": {
		{Day: 13, Label: "Natalicio de Fidel", Description: "Natalicio de Fidel Castro, líder histórico de la Revolución"},
		{Day: 23, Label: "Aniversario FMC", Description: "Fundación de la Federación de Mujeres Cubanas dirigida por Vilma Espín"},
	},
	"Septiembre": {
		{Day: 28, Label: "Aniversario CDR", Description: "Fundación de los Comités de Defensa de la Revolución"},
	},
	"Octubre": {
		{Day: 1, Label: "Adulto Mayor", Description: "Jornada de salud y atención al adulto mayor"},
		{Day: 8, Label: "Caída del Che", Description: "Aniversario de la caída en combate de Ernesto Che Guevara en Bolivia"},
		{Day: 10, Label: "1868", Description: "Levantamiento armado en La Demajagua encabezado por Carlos Manuel de Céspedes"},
		{Day: 20, Label: "Día de la Cultura Nacional", Description: "Se entona por primera vez el Himno de Bayamo, fiesta de la cultura cubana"},
		{Day: 28, Label: "Camilo Cienfuegos", Description: "Aniversario de la desaparición física de Camilo Cienfuegos"},
	},
	"Noviembre": {
		{Day: 5, Label: "Natalicio de Céspedes", Description: "Natalicio de Carlos Manuel de Céspedes, Padre de la Patria, en Bayamo"},
		{Day: 27, Label: "Estudiantes de Medicina", Description: "Aniversario del fusilamiento de los ocho estudiantes de medicina"},
	},
	"Diciembre": {
		{Day: 2, Label: "Desembarco del Granma", Description: "Aniversario del desembarco del yate Granma con Fidel al frente"},
		{Day: 7, Label: "Caída de Maceo", Description: "Aniversario de la caída en combate de Antonio Maceo en San Pedro"},
	},
}

// Conmemoraciones holds the official designations, keyed by month name.
// A national designation wins its day's central theme verbatim.
var Conmemoraciones = agenda.ConmemoracionesData{
	"Enero": {
		{Day: 1, National: "Día de la Liberación"},
		{Day: 28, National: "Natalicio de José Martí"},
	},
	"Marzo": {
		{Day: 8, International: "Día Internacional de la Mujer"},
	},
	"Mayo": {
		{Day: 1, National: "Día Internacional de los Trabajadores"},
	},
	"Julio": {
		{Day: 26, National: "Día de la Rebeldía Nacional"},
	},
	"Octubre": {
		{Day: 1, International: "Día Internacional de las Personas de Edad"},
		{Day: 10, National: "Inicio de las Guerras de Independencia"},
		{Day: 20, National: "Día de la Cultura Cubana"},
	},
	"Diciembre": {
		{Day: 2, National: "Día de las Fuerzas Armadas Revolucionarias"},
	},
}
