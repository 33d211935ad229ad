// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"fmt"
	"strings"

	"github.com/fpgawars/icm/pkg/collection"
)

// RenderReadme builds README.md for m. blocks and examples are the
// rendered .ice trees (see iceTree) and may be empty.
func RenderReadme(m *collection.Manifest, blocks, examples string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", m.Name)
	if m.Logo != "" {
		fmt.Fprintf(&sb, "![](%s)\n\n", m.Logo)
	}

	sb.WriteString("[![Icestudio](https://img.shields.io/badge/collection-icestudio-blue.svg)](https://github.com/FPGAwars/icestudio)\n")
	// Shields.io treats "-" as a field separator; "--" is a literal dash.
	fmt.Fprintf(&sb, "![Version](https://img.shields.io/badge/version-v%s-orange.svg)\n\n",
		strings.ReplaceAll(m.Version, "-", "--"))

	fmt.Fprintf(&sb, "%s\n\n", m.Description)

	if m.Wiki != "" {
		sb.WriteString("## Documentation\n")
		fmt.Fprintf(&sb, "Find more information in the [WIKI page](%s)  \n\n", m.Wiki)
	}

	sb.WriteString("## Install\n\n")
	fmt.Fprintf(&sb, "* Download the collection%s\n", downloadLinks(m))
	sb.WriteString("* Install the collection: *Tools > Collections > Add*\n")
	fmt.Fprintf(&sb, "* Select a block: *Select > %s*\n\n", m.Name)

	section(&sb, "Blocks", blocks)
	section(&sb, "Examples", examples)
	section(&sb, "Authors", people(m.Authors))
	section(&sb, "Contributors", people(m.Contributors))

	if m.License != "" {
		sb.WriteString("## License\n\n")
		fmt.Fprintf(&sb, "Licensed under [%s](https://opensource.org/licenses/%s).\n", m.License, m.License)
	}

	return sb.String()
}

// downloadLinks returns ": [stable](...) or [development](...)" when the
// manifest names its repository.
func downloadLinks(m *collection.Manifest) string {
	if m.Repository == nil || m.Repository.URL == "" {
		return ""
	}
	url := strings.TrimSuffix(m.Repository.URL, "/")
	return fmt.Sprintf(": [stable](%s/archive/refs/tags/v%s.zip) or [development](%s/archive/refs/heads/%s.zip)",
		url, m.Version, url, m.RepositoryBranch())
}

func section(sb *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(sb, "## %s\n%s\n", title, body)
}

// people renders one bullet per named person, linked when a URL is set.
// Template placeholders with an empty name are skipped.
func people(ps []collection.Person) string {
	var sb strings.Builder
	for _, p := range ps {
		switch {
		case p.Name == "":
			continue
		case p.URL != "":
			fmt.Fprintf(&sb, "* [%s](%s)\n", p.Name, p.URL)
		default:
			fmt.Fprintf(&sb, "* %s\n", p.Name)
		}
	}
	return sb.String()
}
