// Package rules holds the canonical conventions every tool is checked
// against and the per-tool exceptions layered on top of them.
//
// A Rules value is built once and never mutated; every accessor either
// returns a scalar or a fresh copy, and exceptions only shadow lookups.
package rules

import (
	_ "embed"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Option value type codes as printed by a tool's --help output.
const (
	TypeNone      = ""
	TypeString    = "s"
	TypeInt       = "i"
	TypeHash      = "h"
	TypeArray     = "a"
	TypeHashCase  = "H"
	TypeArrayCase = "A"
	TypeTime      = "m"
	TypeFile      = "F"
)

var knownTypes = map[string]struct{}{
	TypeNone:      {},
	TypeString:    {},
	TypeInt:       {},
	TypeHash:      {},
	TypeArray:     {},
	TypeHashCase:  {},
	TypeArrayCase: {},
	TypeTime:      {},
	TypeFile:      {},
}

// OptionSpec is the expected value type and short form of a long option.
// Empty strings mean "no type" and "no short form".
type OptionSpec struct {
	Type  string `yaml:"type"`
	Short string `yaml:"short"`
}

// ModulePolicy says how the use of a declared helper module is detected.
type ModulePolicy int

const (
	PolicyInstantiated ModulePolicy = iota // constructed with new somewhere in the file
	PolicyIgnored                          // never checked
	PolicyDynamic                          // constructed from a runtime string; assumed used
	PolicyNotObject                        // referenced by namespace or import, never constructed
	PolicyBaseClass                        // used only through one of its subclasses
)

func (p ModulePolicy) String() string {
	switch p {
	case PolicyInstantiated:
		return "instantiated"
	case PolicyIgnored:
		return "ignored"
	case PolicyDynamic:
		return "dynamic"
	case PolicyNotObject:
		return "not-object"
	case PolicyBaseClass:
		return "base-class"
	default:
		return "unknown"
	}
}

type ruleFile struct {
	Options          map[string]OptionSpec            `yaml:"options"`
	OptionExceptions map[string]map[string]OptionSpec `yaml:"option_exceptions"`
	Headers          []string                         `yaml:"headers"`
	HeaderExceptions map[string][]string              `yaml:"header_exceptions"`
	IgnoredModules   []string                         `yaml:"ignored_modules"`
	NonObjectModules []string                         `yaml:"non_object_modules"`
	DynamicModules   map[string][]string              `yaml:"dynamic_modules"`
	BaseClassModules map[string][]string              `yaml:"base_class_modules"`
	IgnoredOptions   []string                         `yaml:"ignored_options"`
	NoDSNTools       []string                         `yaml:"no_dsn_tools"`
}

// Rules is the immutable set of canonical tables and exceptions.
type Rules struct {
	options          map[string]OptionSpec
	optionExceptions map[string]map[string]OptionSpec
	headers          []string
	headerExceptions map[string][]string
	ignoredModules   map[string]struct{}
	nonObjectModules map[string]struct{}
	dynamicModules   map[string]map[string]struct{}
	baseClasses      map[string][]string
	ignoredOptions   map[string]struct{}
	noDSNTools       map[string]struct{}
}

// Default returns the rules embedded in the binary.
func Default() (*Rules, error) {
	r, err := Parse(defaultRules)
	if err != nil {
		return nil, errors.Wrap(err, "embedded rules")
	}
	return r, nil
}

// Parse decodes a YAML rules document.
func Parse(data []byte) (*Rules, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode rules")
	}
	if len(f.Headers) == 0 {
		return nil, errors.New("rules define no headers")
	}
	for name, spec := range f.Options {
		if err := validateSpec(spec); err != nil {
			return nil, errors.Wrapf(err, "option %s", name)
		}
	}
	for tool, specs := range f.OptionExceptions {
		for name, spec := range specs {
			if err := validateSpec(spec); err != nil {
				return nil, errors.Wrapf(err, "%s option %s", tool, name)
			}
		}
	}

	r := &Rules{
		options:          f.Options,
		optionExceptions: f.OptionExceptions,
		headers:          f.Headers,
		headerExceptions: f.HeaderExceptions,
		ignoredModules:   toSet(f.IgnoredModules),
		nonObjectModules: toSet(f.NonObjectModules),
		dynamicModules:   make(map[string]map[string]struct{}, len(f.DynamicModules)),
		baseClasses:      f.BaseClassModules,
		ignoredOptions:   toSet(f.IgnoredOptions),
		noDSNTools:       toSet(f.NoDSNTools),
	}
	for tool, mods := range f.DynamicModules {
		r.dynamicModules[tool] = toSet(mods)
	}
	return r, nil
}

func validateSpec(spec OptionSpec) error {
	if _, ok := knownTypes[spec.Type]; !ok {
		return errors.Errorf("unknown type code %q", spec.Type)
	}
	if len(spec.Short) > 1 {
		return errors.Errorf("short form %q is longer than one letter", spec.Short)
	}
	return nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// Option returns the expected spec of option for tool. The tool's exception
// wins over the canonical entry; ok is false when neither knows the option.
func (r *Rules) Option(tool, option string) (OptionSpec, bool) {
	if spec, ok := r.optionExceptions[tool][option]; ok {
		return spec, true
	}
	spec, ok := r.options[option]
	return spec, ok
}

// Headers returns the required top-level headers of tool in canonical order.
func (r *Rules) Headers(tool string) []string {
	if hs, ok := r.headerExceptions[tool]; ok {
		return slices.Clone(hs)
	}
	return slices.Clone(r.headers)
}

// ModulePolicy returns how usage of module is detected in tool.
func (r *Rules) ModulePolicy(tool, module string) ModulePolicy {
	if _, ok := r.ignoredModules[module]; ok {
		return PolicyIgnored
	}
	if _, ok := r.dynamicModules[tool][module]; ok {
		return PolicyDynamic
	}
	if _, ok := r.nonObjectModules[module]; ok {
		return PolicyNotObject
	}
	if _, ok := r.baseClasses[module]; ok {
		return PolicyBaseClass
	}
	return PolicyInstantiated
}

// Subclasses returns the known subclasses of a base-class module.
func (r *Rules) Subclasses(module string) []string {
	return slices.Clone(r.baseClasses[module])
}

// IgnoredOption reports whether option is exempt from the usage check.
func (r *Rules) IgnoredOption(option string) bool {
	_, ok := r.ignoredOptions[option]
	return ok
}

// RequiresDSN reports whether tool must call the shared DSN option parser.
func (r *Rules) RequiresDSN(tool string) bool {
	_, ok := r.noDSNTools[tool]
	return !ok
}
