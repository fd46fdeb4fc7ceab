// Package pod extracts the structure of POD documentation embedded in a
// program's source text: command paragraphs, the heading tree and the
// option entries listed under each heading.
package pod

import (
	"regexp"
	"strconv"
	"strings"
)

// Command is a single POD command paragraph such as "=head1 OPTIONS" or
// "=item --[no]quiet".
type Command struct {
	Name string // head1, item, over, ...
	Arg  string // text after the command name, untrimmed on the right
	Line int    // 1-based line number in the source
}

// Section is a heading together with the option entries and deeper headings
// that follow it.
type Section struct {
	Name        string
	Level       int
	Line        int
	Options     []string
	Subsections []*Section
}

var (
	commandLine = regexp.MustCompile(`^=([a-zA-Z][a-zA-Z0-9]*)(?:[ \t](.*))?$`)
	optionItem  = regexp.MustCompile(`^--(?:\[no\])?([A-Za-z0-9][A-Za-z0-9_-]*)`)
)

// Commands returns the POD command paragraphs of src in order. Any line that
// starts with "=identifier" opens or continues a POD block, so code between
// "=cut" and the next command never yields commands. Lines are not limited
// in length.
func Commands(src string) []Command {
	var cmds []Command
	for i, line := range strings.Split(src, "\n") {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")
		m := commandLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[1] == "cut" {
			continue
		}
		cmds = append(cmds, Command{Name: m[1], Arg: m[2], Line: lineNo})
	}
	return cmds
}

// HeadingLevel reports the N of a "=headN" command.
func HeadingLevel(c Command) (int, bool) {
	if !strings.HasPrefix(c.Name, "head") {
		return 0, false
	}
	n, err := strconv.Atoi(c.Name[len("head"):])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// OptionName returns the long option name of an "=item" argument, without the
// leading "--" and the optional "[no]" negation marker.
func OptionName(itemArg string) (string, bool) {
	m := optionItem.FindStringSubmatch(strings.TrimSpace(itemArg))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Sections builds the heading tree of cmds. Option entries are attached to the
// innermost open heading; entries before the first heading are dropped.
func Sections(cmds []Command) []*Section {
	var (
		roots []*Section
		stack []*Section
	)
	for _, c := range cmds {
		if level, ok := HeadingLevel(c); ok {
			sec := &Section{Name: strings.TrimSpace(c.Arg), Level: level, Line: c.Line}
			for len(stack) > 0 && stack[len(stack)-1].Level >= level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				roots = append(roots, sec)
			} else {
				parent := stack[len(stack)-1]
				parent.Subsections = append(parent.Subsections, sec)
			}
			stack = append(stack, sec)
			continue
		}
		if c.Name != "item" || len(stack) == 0 {
			continue
		}
		if name, ok := OptionName(c.Arg); ok {
			cur := stack[len(stack)-1]
			cur.Options = append(cur.Options, name)
		}
	}
	return roots
}

// Find returns the first top-level section named name.
func Find(roots []*Section, name string) *Section {
	for _, s := range roots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// DocumentedOptions returns every option named by an "=item --" entry in src,
// in order of first appearance.
func DocumentedOptions(src string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range Commands(src) {
		if c.Name != "item" {
			continue
		}
		name, ok := OptionName(c.Arg)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
