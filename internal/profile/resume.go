package profile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/cheddar/internal/skills"
)

// WriteResume renders the print-friendly page: the profile header, every
// stat and every skill at its full percentage.
func WriteResume(w io.Writer, p *Profile, d *skills.Data) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", p.Name, p.Title)
	if email := Deobfuscate(p.Email); email != "" {
		fmt.Fprintf(&b, "Contact: %s\n\n", email)
	}
	b.WriteString(p.Bio + "\n\n")

	b.WriteString("STATS\n")
	for _, s := range p.Stats {
		fmt.Fprintf(&b, "  %-20s %d%s\n", s.Label, s.Value, s.Suffix)
	}

	for _, name := range skills.Sections {
		list := d.Section(name)
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(name))
		for _, s := range list {
			fmt.Fprintf(&b, "  %-32s %-5s %3d%%\n", s.Name, skills.StarString(s.Rating), skills.Percent(s.Rating))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveResume writes the résumé to path, creating its directory.
func SaveResume(path string, p *Profile, d *skills.Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteResume(f, p, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
