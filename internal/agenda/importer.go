package agenda

import (
	"strings"

	"github.com/rcmonumento/agenda-go/internal/stringutil"
)

// MutationKind identifies the content-store field a mutation targets.
type MutationKind string

const (
	// MutationDayTheme sets the central theme for a day key.
	MutationDayTheme MutationKind = "day-theme"
	// MutationProgramTheme sets a program's theme for a content key.
	MutationProgramTheme MutationKind = "program-theme"
	// MutationProgramIdeas sets a program's ideas text for a content key.
	MutationProgramIdeas MutationKind = "program-ideas"
)

// Mutation is one proposed content-store write produced by the importer.
// Keys are always in the current three-part form.
type Mutation struct {
	Kind      MutationKind
	ProgramID string // empty for MutationDayTheme
	Key       string
	Value     string
}

// ImportResult carries the proposed mutations and the count of
// successfully bound fields, which callers report as "N changes applied"
// or "no valid data found".
type ImportResult struct {
	Mutations []Mutation
	Applied   int
}

// parserState names the importer's finite-state machine states.
type parserState int

const (
	stateAwaitingDay parserState = iota
	stateHasDay
	stateHasProgram
	stateIdeas
)

// line keywords after bold-stripping and normalization.
const (
	kwDay      = "dia"
	kwDayTheme = "tematica del dia"
	kwProgram  = "programa"
	kwTheme    = "tematica"
	kwIdeas    = "ideas"
	kwSources  = "fuentes"
)

// ImportWeekText parses the bulk-import text dialect for one week and
// returns the proposed content-store mutations.
//
// The grammar is line-oriented with case/diacritics-insensitive keyword
// prefixes (DÍA:, Temática del día:, Programa:, Temática:, Ideas:,
// Fuentes:); decorative bold markers are stripped before matching. Lines
// following Ideas: are accumulated verbatim, newline-joined, until the
// next recognized keyword. Parsing is best-effort: out-of-context or
// unrecognized lines are skipped, never fatal, so a partially malformed
// file still applies its valid fragments.
func ImportWeekText(text, month, weekID string, programs []Program) ImportResult {
	p := &weekImporter{
		month:    month,
		weekID:   weekID,
		programs: programs,
		state:    stateAwaitingDay,
	}

	for _, line := range strings.Split(text, "\n") {
		p.consume(strings.TrimSuffix(line, "\r"))
	}
	p.flushIdeas()

	return ImportResult{Mutations: p.mutations, Applied: p.applied}
}

// weekImporter holds the FSM context while walking the input lines.
type weekImporter struct {
	month    string
	weekID   string
	programs []Program

	state      parserState
	dayKey     string // current-form key for the active day, "" before DÍA:
	programID  string
	ideasText  strings.Builder
	ideasKey   string
	ideasProg  string
	ideasEmpty bool

	mutations []Mutation
	applied   int
}

func (p *weekImporter) consume(raw string) {
	clean := strings.TrimSpace(stringutil.StripBold(raw))
	keyword, rest, ok := splitKeywordLine(clean)
	if !ok {
		// Inside an ideas block every non-keyword line is content,
		// appended verbatim from the raw input.
		if p.state == stateIdeas {
			p.appendIdeasLine(raw)
		}
		return
	}

	switch keyword {
	case kwDay:
		p.transitionDay(rest)
	case kwDayTheme:
		p.bindDayTheme(rest)
	case kwProgram:
		p.transitionProgram(rest)
	case kwTheme:
		p.bindTheme(rest)
	case kwIdeas:
		p.beginIdeas(rest)
	case kwSources:
		// Sources blocks belong to the export side; the keyword only
		// terminates an ideas block here.
		p.flushIdeas()
		if p.state == stateIdeas {
			p.state = stateHasProgram
		}
	}
}

// transitionDay resets the machine to has-day (or awaiting-day when the
// weekday is unrecognizable). Only the first token after the colon names
// the day.
func (p *weekImporter) transitionDay(rest string) {
	p.flushIdeas()
	p.programID = ""

	day, ok := CanonicalWeekday(firstToken(rest))
	if !ok {
		p.state = stateAwaitingDay
		p.dayKey = ""
		return
	}
	p.state = stateHasDay
	p.dayKey = EncodeKey(p.month, p.weekID, day)
}

func (p *weekImporter) bindDayTheme(rest string) {
	p.flushIdeas()
	if p.dayKey == "" {
		return
	}
	p.mutations = append(p.mutations, Mutation{
		Kind:  MutationDayTheme,
		Key:   p.dayKey,
		Value: strings.TrimSpace(rest),
	})
	p.applied++
	if p.state == stateIdeas {
		p.state = stateHasProgram
	}
}

// transitionProgram resolves the program by fuzzy name match. An unknown
// program drops back to has-day so the following THEME/IDEAS lines are
// ignored rather than misattributed.
func (p *weekImporter) transitionProgram(rest string) {
	p.flushIdeas()
	if p.dayKey == "" {
		return
	}
	prog, ok := MatchProgram(p.programs, strings.TrimSpace(rest))
	if !ok {
		p.programID = ""
		p.state = stateHasDay
		return
	}
	p.programID = prog.ID
	p.state = stateHasProgram
}

func (p *weekImporter) bindTheme(rest string) {
	p.flushIdeas()
	if p.state != stateHasProgram && p.state != stateIdeas {
		return
	}
	p.mutations = append(p.mutations, Mutation{
		Kind:      MutationProgramTheme,
		ProgramID: p.programID,
		Key:       p.dayKey,
		Value:     strings.TrimSpace(rest),
	})
	p.applied++
	p.state = stateHasProgram
}

func (p *weekImporter) beginIdeas(rest string) {
	p.flushIdeas()
	if p.state != stateHasProgram && p.state != stateIdeas {
		return
	}
	p.state = stateIdeas
	p.ideasKey = p.dayKey
	p.ideasProg = p.programID
	p.ideasText.Reset()
	p.ideasEmpty = true
	if content := strings.TrimSpace(rest); content != "" {
		p.ideasText.WriteString(content)
		p.ideasEmpty = false
	}
	p.applied++
}

func (p *weekImporter) appendIdeasLine(raw string) {
	if !p.ideasEmpty {
		p.ideasText.WriteString("\n")
	}
	p.ideasText.WriteString(raw)
	p.ideasEmpty = false
}

// flushIdeas closes an open ideas block into a single mutation carrying
// the full accumulated text, keeping re-imports idempotent.
func (p *weekImporter) flushIdeas() {
	if p.ideasKey == "" {
		return
	}
	p.mutations = append(p.mutations, Mutation{
		Kind:      MutationProgramIdeas,
		ProgramID: p.ideasProg,
		Key:       p.ideasKey,
		Value:     p.ideasText.String(),
	})
	p.ideasKey = ""
	p.ideasProg = ""
	p.ideasText.Reset()
}

// splitKeywordLine matches a "Keyword: rest" line against the import
// grammar. The keyword comparison is case and diacritics insensitive.
func splitKeywordLine(line string) (keyword, rest string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	switch stringutil.Normalize(line[:idx]) {
	case kwDay, kwDayTheme, kwProgram, kwTheme, kwIdeas, kwSources:
		return stringutil.Normalize(line[:idx]), line[idx+1:], true
	}
	return "", "", false
}

// programSynonyms groups names that historically referred to the same
// slot; any two names sharing a group resolve to the same program.
var programSynonyms = [][]string{
	{"noticiero", "rcm noticias"},
	{"buenos dias"},
}

// MatchProgram fuzzy-matches an imported program name against the known
// grid: normalized substring containment in either direction, then the
// synonym table. Returns false when nothing matches; no partial program
// is ever created for an unknown name.
func MatchProgram(programs []Program, name string) (Program, bool) {
	search := stringutil.Normalize(name)
	if search == "" {
		return Program{}, false
	}
	for _, prog := range programs {
		pname := stringutil.Normalize(prog.Name)
		if strings.Contains(pname, search) || strings.Contains(search, pname) {
			return prog, true
		}
		for _, group := range programSynonyms {
			if containsAny(search, group) && containsAny(pname, group) {
				return prog, true
			}
		}
	}
	return Program{}, false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
