// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Ids start at 1 so the zero value means "no catalog page".
const (
	InvalidReferenceId Id = iota + 1
	ManifestUnavailableId
	DownloadFailedId
	ArchiveCorruptId
	CollectionNotFoundId
	StoreNotWritableId
	ConfigLoadFailedId
	NotACollectionId
)

type (
	// Id identifies a catalog page.
	Id int

	// MarkdownMsg is the Markdown body of a catalog page.
	MarkdownMsg string

	// HttpLink is a documentation or external URL.
	HttpLink string

	// Issue is one catalog page of longer help for a failure class.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

// Id returns the catalog identifier.
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

// Render renders the page with glamour. stylePath is a glamour style name
// ("dark", "light", "notty") or a path to a JSON style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

//nolint:gochecknoglobals // Read-only catalog; render is a test seam.
var (
	render = glamour.Render

	invalidReferenceIssue = &Issue{
		id: InvalidReferenceId,
		mdMsg: `
# Invalid collection reference!

Collections are named with letters and digits only, optionally followed by
a version of the form major.minor or major.minor.patch.

## Valid examples
~~~
$ icm install iceK
$ icm install iceK@0.1.4
$ icm rm iceK-0.1.4
~~~

## Things you can try
- Remove spaces, dashes or underscores from the collection name
- Drop pre-release suffixes such as "-rc1" from the version`,
		docLinks: []HttpLink{"https://github.com/FPGAwars/icm"},
	}

	manifestUnavailableIssue = &Issue{
		id: ManifestUnavailableId,
		mdMsg: `
# Could not determine the latest version!

Without an explicit version, icm reads the collection's package.json from
its main branch to find the latest release. That file could not be
downloaded or did not contain a usable version.

## Things you can try
- Check the collection name with:
~~~
$ icm lsgit
~~~
- Install an explicit version, e.g. "icm install iceK@0.1.4"
- Install the development build with "icm install --dev iceK"
- Check your network connection and proxy settings`,
		extLinks: []HttpLink{"https://github.com/FPGAwars"},
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# Download failed!

The collection archive could not be downloaded.

## Common causes
- The requested version was never released (HTTP 404)
- The network is unreachable or a proxy blocks the request

## Things you can try
- List published collections with "icm lsgit"
- Retry later; nothing was installed`,
	}

	archiveCorruptIssue = &Issue{
		id: ArchiveCorruptId,
		mdMsg: `
# The collection archive could not be extracted!

The downloaded zip file is corrupt or contains entries that would be written
outside of the collections folder. Nothing was added to the store; the
archive was kept so it can be inspected.

## Things you can try
- Delete the archive named in the error and install again
- Report the problem to the collection maintainers`,
	}

	collectionNotFoundIssue = &Issue{
		id: CollectionNotFoundId,
		mdMsg: `
# Collection not installed!

No installed collection matches the given name.

## Things you can try
- List installed collections:
~~~
$ icm ls
~~~
- Use the exact folder name, e.g. "icm rm iceK-0.1.4"`,
	}

	storeNotWritableIssue = &Issue{
		id: StoreNotWritableId,
		mdMsg: `
# Cannot write to the collections folder!

icm keeps collections in ~/.icestudio/collections unless configured
otherwise.

## Things you can try
- Check the folder permissions
- Point icm at another folder with --collections-dir or the
  "collections_dir" configuration key
- Run "icm info" to see which folders exist`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file is not valid CUE or does not match the schema.

## Example configuration
~~~cue
collections_dir: "/home/me/.icestudio/collections"
remote: {
	base_url:   "https://github.com/FPGAwars"
	timeout:    "10s"
	chunk_size: 1024
}
ui: {
	verbose:  false
	progress: true
}
~~~

## Things you can try
- Show the effective configuration with "icm config show"
- Recreate the defaults with "icm config init"`,
	}

	notACollectionIssue = &Issue{
		id: NotACollectionId,
		mdMsg: `
# Not a valid collection!

A collection folder needs a package.json with name, version and description,
and at least one of the blocks/ or examples/ folders.

## Things you can try
- Create the skeleton in the current folder:
~~~
$ icm create
~~~
- Check the folder with "icm validate"`,
	}

	issues = map[Id]*Issue{
		invalidReferenceIssue.Id():    invalidReferenceIssue,
		manifestUnavailableIssue.Id(): manifestUnavailableIssue,
		downloadFailedIssue.Id():      downloadFailedIssue,
		archiveCorruptIssue.Id():      archiveCorruptIssue,
		collectionNotFoundIssue.Id():  collectionNotFoundIssue,
		storeNotWritableIssue.Id():    storeNotWritableIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		notACollectionIssue.Id():      notACollectionIssue,
	}
)

// Values returns every catalog page ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the page for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
