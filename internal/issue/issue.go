// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RezNotFoundId Id = iota + 1
	LicenseUnreadableId
	ImageNotFoundId
	PayloadWriteFailedId
	CompileFailedId
	HdiutilFailedId
	InvalidCompressionId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // Apple documentation for the tool involved
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

// Render renders the issue as terminal Markdown. stylePath is a glamour
// style name ("auto", "dark", "light", "notty") or a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

const (
	rezManLink     HttpLink = "https://keith.github.io/xcode-man-pages/Rez.1.html"
	hdiutilManLink HttpLink = "https://ss64.com/mac/hdiutil.html"
)

var (
	render = glamour.Render

	rezNotFoundIssue = &Issue{
		id: RezNotFoundId,
		mdMsg: `
# Rez was not found!

The license is compiled into the image by **Rez**, the resource compiler
that ships with Xcode and the Xcode command line tools.

## Things you can try
- Install the command line tools:
~~~
$ xcode-select --install
~~~
- Point dmglicense at an existing Rez:
~~~
$ dmglicense --rez "$(xcrun --find Rez)" App.dmg LICENSE.rtf
~~~
- Or set it once in your config file:
~~~cue
rez: "/Applications/Xcode.app/Contents/Developer/usr/bin/Rez"
~~~`,
		docLinks: []HttpLink{rezManLink},
	}

	licenseUnreadableIssue = &Issue{
		id: LicenseUnreadableId,
		mdMsg: `
# The license file could not be read!

## Things you can try
- Check that the path is correct and the file is readable
- Plain text licenses must be UTF-8 encoded; convert them with:
~~~
$ iconv -f MACROMAN -t UTF-8 LICENSE.txt > LICENSE.utf8.txt
~~~
- Rich text licenses must use the **.rtf** extension so they are
  stored as RTF instead of plain text`,
	}

	imageNotFoundIssue = &Issue{
		id: ImageNotFoundId,
		mdMsg: `
# The disk image does not exist!

dmglicense modifies an existing image in place.

## Things you can try
- Create the image first, for example:
~~~
$ hdiutil create -srcfolder build/App.app -format UDZO App.dmg
~~~
- Check the path you passed as the first argument`,
		docLinks: []HttpLink{hdiutilManLink},
	}

	payloadWriteFailedIssue = &Issue{
		id: PayloadWriteFailedId,
		mdMsg: `
# The resource file could not be written!

The license is written to a temporary **.r** file that Rez compiles.

## Things you can try
- Make sure the temporary directory exists and is writable
- Choose another directory:
~~~
$ dmglicense --temp-dir "$TMPDIR" App.dmg LICENSE.txt
~~~
- Check free disk space`,
	}

	compileFailedIssue = &Issue{
		id: CompileFailedId,
		mdMsg: `
# Rez failed to add the license!

## Things you can try
- Run again with **--verbose** to see the Rez output
- Make sure the image is not mounted:
~~~
$ hdiutil info
~~~
- Inspect the generated resource source:
~~~
$ dmglicense payload LICENSE.txt > license.r
~~~`,
		docLinks: []HttpLink{rezManLink},
	}

	hdiutilFailedIssue = &Issue{
		id: HdiutilFailedId,
		mdMsg: `
# hdiutil reported a failure!

Unflatten, flatten and convert failures are reported as warnings. The
license may still have been added. Pass **--strict** to treat them as
errors.

## Things you can try
- Detach the image if it is mounted
- Run again with **--verbose** to see the hdiutil output`,
		docLinks: []HttpLink{hdiutilManLink},
	}

	invalidCompressionIssue = &Issue{
		id: InvalidCompressionId,
		mdMsg: `
# Unknown compression!

## Valid values
- **bz2** converts the image to UDBZ
- **gz** converts the image to UDZO with zlib level 9
- leave it empty to keep the image as it is`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try
- Check the CUE syntax of your config file
- Show where the file is looked up:
~~~
$ dmglicense config path
~~~
- Write a fresh default file:
~~~
$ dmglicense config init
~~~`,
	}

	issues = map[Id]*Issue{
		rezNotFoundIssue.Id():        rezNotFoundIssue,
		licenseUnreadableIssue.Id():  licenseUnreadableIssue,
		imageNotFoundIssue.Id():      imageNotFoundIssue,
		payloadWriteFailedIssue.Id(): payloadWriteFailedIssue,
		compileFailedIssue.Id():      compileFailedIssue,
		hdiutilFailedIssue.Id():      hdiutilFailedIssue,
		invalidCompressionIssue.Id(): invalidCompressionIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
