// Package vcard reads and writes vCard 3.0 contact files. Parsing is
// deliberately forgiving: folded lines are unfolded, property
// parameters (EMAIL;TYPE=WORK) are tolerated, unknown properties are
// ignored, and records carrying no name, email, or phone are skipped.
package vcard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phyllis-tools/cardmerge/internal/contact"
)

// Decode parses a vCard stream into contacts, tagging each with
// source. Content outside BEGIN:VCARD/END:VCARD framing is ignored.
func Decode(r io.Reader, source string) ([]*contact.Contact, error) {
	var records []*contact.Contact
	var current []string
	inCard := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			inCard = true
			current = current[:0]
		case strings.HasPrefix(upper, "END:VCARD"):
			if inCard {
				rec := parseCard(unfold(current))
				rec.Source = source
				if !rec.Empty() {
					records = append(records, rec)
				}
			}
			inCard = false
		case inCard:
			current = append(current, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vcard stream: %w", err)
	}
	return records, nil
}

// DecodeFile parses one .vcf file; the source tag defaults to the base
// filename when sourceName is empty.
func DecodeFile(path, sourceName string) ([]*contact.Contact, error) {
	if sourceName == "" {
		sourceName = filepath.Base(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f, sourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// unfold joins continuation lines (leading space or tab) onto their
// predecessor, dropping the single leading whitespace character.
func unfold(lines []string) []string {
	var out []string
	for _, line := range lines {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(out) > 0 {
			out[len(out)-1] += line[1:]
			continue
		}
		out = append(out, line)
	}
	return out
}

func parseCard(lines []string) *contact.Contact {
	rec := &contact.Contact{}
	for _, line := range lines {
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		prop := strings.ToUpper(line[:colon])
		value := strings.TrimSpace(line[colon+1:])
		if value == "" {
			continue
		}

		// Parameters like ;TYPE=WORK ride along after the property
		// name; match on the bare name.
		if semi := strings.Index(prop, ";"); semi >= 0 {
			prop = prop[:semi]
		}

		switch prop {
		case "FN":
			rec.DisplayName = value
		case "N":
			rec.NameParts = strings.Split(value, ";")
		case "EMAIL":
			rec.AddEmail(value)
		case "TEL":
			rec.AddPhone(value)
		case "ADR":
			rec.AddAddress(value)
		case "NOTE":
			rec.AddNote(value)
		case "ORG":
			rec.Org = value
		case "TITLE":
			rec.Title = value
		case "BDAY":
			rec.Birthday = value
		case "URL":
			rec.URL = value
		}
	}
	return rec
}

// Encode writes contacts as vCard 3.0, one card per record, fields in
// stable order.
func Encode(w io.Writer, records []*contact.Contact) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		writeCard(bw, rec)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write vcard stream: %w", err)
	}
	return nil
}

// EncodeFile writes contacts to path, creating or truncating it.
func EncodeFile(path string, records []*contact.Contact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, records); err != nil {
		return err
	}
	return f.Close()
}

func writeCard(w *bufio.Writer, rec *contact.Contact) {
	w.WriteString("BEGIN:VCARD\r\n")
	w.WriteString("VERSION:3.0\r\n")
	if rec.DisplayName != "" {
		fmt.Fprintf(w, "FN:%s\r\n", rec.DisplayName)
	}
	if len(rec.NameParts) > 0 {
		fmt.Fprintf(w, "N:%s\r\n", strings.Join(rec.NameParts, ";"))
	}
	for _, email := range rec.Emails {
		fmt.Fprintf(w, "EMAIL:%s\r\n", email)
	}
	for _, phone := range rec.Phones {
		fmt.Fprintf(w, "TEL:%s\r\n", phone)
	}
	for _, addr := range rec.Addresses {
		fmt.Fprintf(w, "ADR:%s\r\n", addr)
	}
	if rec.Org != "" {
		fmt.Fprintf(w, "ORG:%s\r\n", rec.Org)
	}
	if rec.Title != "" {
		fmt.Fprintf(w, "TITLE:%s\r\n", rec.Title)
	}
	if rec.Birthday != "" {
		fmt.Fprintf(w, "BDAY:%s\r\n", rec.Birthday)
	}
	if rec.URL != "" {
		fmt.Fprintf(w, "URL:%s\r\n", rec.URL)
	}
	for _, note := range rec.Notes {
		fmt.Fprintf(w, "NOTE:%s\r\n", note)
	}
	w.WriteString("END:VCARD\r\n")
}
