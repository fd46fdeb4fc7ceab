// # check-tool
//
// `check-tool` lints the programs of a command-line toolkit by reading their
// source, not by building them. Each program is a Perl script with embedded
// POD documentation, and every program is expected to follow the same
// conventions. `check-tool` never edits a file; it prints what is wrong and
// exits 1.
//
// ## Usage
//
//	check-tool bin/pt-table-sync bin/pt-kill ...
//
// At least one file is required. A file whose base name is not made of
// lowercase letters and hyphens is skipped and counts as a failure, as does a
// file that cannot be read.
//
// ## Checks
//
// Checks run in this order for every file. An error inside one check is
// printed to stderr and the remaining checks still run.
//
//   - option-order: entries under `=head1 OPTIONS`, and under each nested
//     heading, are in lexical order. A leading `[no]` is ignored.
//   - module-usage: every `# Name package` helper copied into the file is
//     used. Some helpers are never objects, some are built from strings at
//     run time, and base classes count as used when a subclass is.
//   - option-types: `TOOL --help` lists each standard option with the
//     canonical type code and short form.
//   - header-order: the required `=head1` headers appear in canonical order
//     and carry no trailing whitespace.
//   - pod-formatting: `perldoc -T` renders without "can't break line", and
//     `podchecker`, when installed, reports "pod syntax OK".
//   - option-usage: every documented option is read with `get()` or `got()`,
//     and the tool's main package calls `parse_options()`.
//
// The canonical tables and per-tool exceptions are embedded from
// internal/rules/rules.yaml.
//
// ## Environment
//
// `PTDEBUG`, when set to anything but an empty string or 0, logs each check
// and each external command to stderr.
package main
