// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	AliasNotFoundId Id = iota + 1
	NotEnoughArgumentsId
	AliasFileNotFoundId
	AliasFileInvalidId
	ConfigLoadFailedId
	ScriptExecutionFailedId
	InvalidRuntimeModeId
	ShellNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	aliasNotFoundIssue = &Issue{
		id: AliasNotFoundId,
		mdMsg: `
# Alias not found!

No alias with that name is registered. Alias names are case-sensitive.

## Things you can try:
- List the registered aliases:
~~~
$ aliascraft list
~~~
- Check that the file defining it is listed in ` + "`alias_files`" + ` or passed with ` + "`--alias-file`" + `
- Run with ` + "`--verbose`" + ` to see entries that were skipped while loading`,
	}

	notEnoughArgumentsIssue = &Issue{
		id: NotEnoughArgumentsId,
		mdMsg: `
# Not enough arguments!

The alias declares expected arguments in ` + "`options.args`" + ` and fewer were given.

## Things you can try:
- Show the alias and its expected arguments:
~~~
$ aliascraft show <alias>
~~~
- Pass at least as many arguments as the alias lists`,
	}

	aliasFileNotFoundIssue = &Issue{
		id: AliasFileNotFoundId,
		mdMsg: `
# Alias file not found!

An alias document named in the configuration or on the command line does not exist.

## Things you can try:
- Check the path; relative ` + "`alias_files`" + ` entries resolve against the config file's directory
- Print the configuration in use:
~~~
$ aliascraft config path
$ aliascraft config dump
~~~`,
	}

	aliasFileInvalidIssue = &Issue{
		id: AliasFileInvalidId,
		mdMsg: `
# Alias file could not be parsed!

The document must be a mapping from alias name to an entry.

## Example (CUE):
~~~cue
greet: {
	action: script: "echo Hello, $1"
	options: {
		group: "demo"
		args: ["name"]
	}
}
shout: action: "upper"
~~~

The same shape works in YAML, JSON and TOML files.`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Print an example configuration:
~~~
$ aliascraft config show
~~~
- Check ` + "`ALIASCRAFT_*`" + ` environment variables for invalid values
- Point to a different file with ` + "`--config`",
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script action failed!

The alias script exited with a non-zero status. Its standard error is shown above.

## Things you can try:
- Run the alias with ` + "`--verbose`" + ` to log its arguments
- Try the other runtime with ` + "`--runtime native`" + ` or ` + "`--runtime virtual`",
	}

	invalidRuntimeModeIssue = &Issue{
		id: InvalidRuntimeModeId,
		mdMsg: `
# Invalid runtime mode!

Script actions run in one of two runtimes:
- ` + "`virtual`" + `: the embedded shell interpreter (default)
- ` + "`native`" + `: the host shell`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

The native runtime could not find a shell to run the script.

## Things you can try:
- Set ` + "`native_shell`" + ` in the configuration
- Use the virtual runtime, which needs no host shell`,
	}

	issues = map[Id]*Issue{
		aliasNotFoundIssue.Id():         aliasNotFoundIssue,
		notEnoughArgumentsIssue.Id():    notEnoughArgumentsIssue,
		aliasFileNotFoundIssue.Id():     aliasFileNotFoundIssue,
		aliasFileInvalidIssue.Id():      aliasFileInvalidIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
		invalidRuntimeModeIssue.Id():    invalidRuntimeModeIssue,
		shellNotFoundIssue.Id():         shellNotFoundIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
