package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-license/pkg/simplelicense"
	"github.com/tendant/simple-license/pkg/simplelicense/config"
)

// profileFlags override profile fields from the command line
type profileFlags struct {
	title        string
	authors      []string
	institution  string
	website      string
	contact      string
	source       string
	dateFormat   string
	templateFile string
}

func (f *profileFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "Title of the work")
	flags.StringSliceVar(&f.authors, "author", nil, "Author name (repeatable)")
	flags.StringVar(&f.institution, "institution", "", "Institution holding the copyright")
	flags.StringVar(&f.website, "website", "", "Website shown in the license")
	flags.StringVar(&f.contact, "contact", "", "Contact shown in the license")
	flags.StringVar(&f.source, "source", "", "Source collection, embedded as album")
	flags.StringVar(&f.dateFormat, "date-format", "", "Download date format (yyyy-m-d, m-yyyy-d, d-m-yyyy, locale-default)")
	flags.StringVar(&f.templateFile, "template-file", "", "License template file")
}

// profile builds the effective profile from configuration and flags.
func (f *profileFlags) profile(cfg *config.Config) (simplelicense.MetadataProfile, error) {
	store, err := cfg.BuildProfileStore()
	if err != nil {
		return simplelicense.MetadataProfile{}, err
	}

	var template string
	if f.templateFile != "" {
		data, err := os.ReadFile(f.templateFile)
		if err != nil {
			return simplelicense.MetadataProfile{}, fmt.Errorf("read template file: %w", err)
		}
		template = string(data)
	}

	format := simplelicense.DateFormat(f.dateFormat)
	if !format.Valid() {
		return simplelicense.MetadataProfile{}, fmt.Errorf("unknown date format %q", f.dateFormat)
	}

	store.Update(func(p *simplelicense.MetadataProfile) {
		override(&p.Title, f.title)
		if len(f.authors) > 0 {
			p.Authors = f.authors
		}
		override(&p.Institution, f.institution)
		override(&p.Website, f.website)
		override(&p.Contact, f.contact)
		override(&p.Source, f.source)
		if format != "" {
			p.DateFormat = format
		}
		override(&p.LicenseTemplate, template)
	})
	return store.Snapshot(), nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
