// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CheckfileNotFoundId Id = iota + 1
	CheckfileParseErrorId
	UnknownCheckId
	ProvisionFailedId
	PackageManagerNotFoundId
	ShellNotFoundId
	ConfigLoadFailedId
	NoFilesMatchedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation links
	extLinks []HttpLink  // external links that might be useful for the user
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
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	checkfileNotFoundIssue = &Issue{
		id: CheckfileNotFoundId,
		mdMsg: `
# No checkfile found!

We searched for a checkfile but couldn't find one in the project root.

## Search locations (in order of precedence):
1. checkfile.cue in the current directory
2. checkfile.toml in the current directory
3. The path given with --checkfile

## Things you can try:
- Create a checkfile in your project root:
~~~
$ checkgate init
~~~

- Or point at an existing one:
~~~
$ checkgate run --checkfile path/to/checkfile.cue
~~~`,
	}

	checkfileParseErrorIssue = &Issue{
		id: CheckfileParseErrorId,
		mdMsg: `
# Failed to parse checkfile!

Your checkfile contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE or TOML syntax (missing quotes, braces, etc.)
- Unknown field names
- A command template missing the {files} placeholder
- Duplicate check ids
- An unpinned interpreter version (it must be an exact version, e.g. "3.12")

## Things you can try:
- Check the error message above for the specific field
- Validate the file without running anything:
~~~
$ checkgate validate
~~~

## Example of a valid check definition:
~~~cue
toolchain: python: "3.12"

checks: [
	{
		id: "lint_check"
		tool: {name: "pylint"}
		command: "pylint {files}"
		files: "src/**/*.py"
	},
]
~~~`,
	}

	unknownCheckIssue = &Issue{
		id: UnknownCheckId,
		mdMsg: `
# Check not found!

The check id you specified is not declared in the checkfile.

## Things you can try:
- List all declared checks:
~~~
$ checkgate list
~~~

- Check for typos in the check id
- Verify the checkfile contains your check definition`,
	}

	provisionFailedIssue = &Issue{
		id: ProvisionFailedId,
		mdMsg: `
# Environment provisioning failed!

We could not build the isolated environment for a check.

## Common causes:
- The requested interpreter version is not installable
- The tool name or pinned version does not exist on the package index
- No network access to download the interpreter or tool

## Things you can try:
- Check the provisioning output above for the failing step
- Verify the tool name and version exist:
~~~
$ uv pip install --dry-run <tool>==<version>
~~~

- Drop the version pin to install the latest release`,
	}

	packageManagerNotFoundIssue = &Issue{
		id: PackageManagerNotFoundId,
		mdMsg: `
# Package manager not found!

Provisioning needs a Python package manager but none was found on PATH.

## Things you can try:
- Install uv (recommended):
  - Linux/macOS: ` + "`curl -LsSf https://astral.sh/uv/install.sh | sh`" + `
  - Windows: ` + "`powershell -c \"irm https://astral.sh/uv/install.ps1 | iex\"`" + `

- Or configure a different manager in your config file:
~~~toml
package_manager = "uv"
~~~`,
		extLinks: []HttpLink{"https://docs.astral.sh/uv/"},
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a suitable shell for the 'native' backend.

## Shells we look for:
- Linux/macOS: $SHELL, bash, sh
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Set the SHELL environment variable
- Use the 'virtual' backend instead (built-in shell):
~~~
$ checkgate run --backend virtual
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the checkgate configuration file.

## Configuration file locations:
- Linux: ~/.config/checkgate/checkgate.toml
- macOS: ~/Library/Application Support/checkgate/checkgate.toml
- Windows: %APPDATA%\checkgate\checkgate.toml

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults
- Inspect the effective configuration:
~~~
$ checkgate config show
~~~`,
	}

	noFilesMatchedIssue = &Issue{
		id: NoFilesMatchedId,
		mdMsg: `
# No files matched!

A check's file pattern matched nothing, so its tool ran over an empty set.

## Things you can try:
- Verify the pattern against your project layout:
~~~cue
files: "src/**/*.py"
~~~

- Run from the project root, or pass --workdir
- Remember patterns use '**' for recursive matching`,
	}

	issues = map[Id]*Issue{
		checkfileNotFoundIssue.Id():       checkfileNotFoundIssue,
		checkfileParseErrorIssue.Id():     checkfileParseErrorIssue,
		unknownCheckIssue.Id():            unknownCheckIssue,
		provisionFailedIssue.Id():         provisionFailedIssue,
		packageManagerNotFoundIssue.Id():  packageManagerNotFoundIssue,
		shellNotFoundIssue.Id():           shellNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		noFilesMatchedIssue.Id():          noFilesMatchedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
