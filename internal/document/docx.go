// Package document reads and writes the paragraph text of .docx files.
//
// Only body-level paragraphs are read (tables, text boxes, headers and
// footers are skipped) and the written document carries plain paragraphs with no
// styling, which is all the translation mode needs.
package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/renameio"
)

const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart = "word/document.xml"
)

// ErrNoDocumentPart is returned for zip files without a main document part.
var ErrNoDocumentPart = errors.New("docx has no word/document.xml")

// ReadParagraphs returns the text of the body-level paragraphs of a .docx.
// Tabs and line breaks inside a paragraph become "\t" and "\n".
func ReadParagraphs(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return nil, ErrNoDocumentPart
}

// skippedSubtrees hold no paragraph text of their own: properties carry tab
// stops and text boxes repeat their text once per AlternateContent branch.
var skippedSubtrees = map[string]bool{
	"pPr":         true,
	"rPr":         true,
	"txbxContent": true,
}

func parseDocumentXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []string // local names of open elements
		paragraphs []string
		current    strings.Builder
		inPara     bool // inside a body-level w:p
		inText     bool // inside a w:t run child of that paragraph
	)
	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if t.Name.Space != wordNS {
				name = t.Name.Space + ":" + name
			}
			if inPara && skippedSubtrees[name] {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse %s: %w", documentPart, err)
				}
				continue
			}
			switch {
			case name == "p" && parent() == "body":
				inPara = true
				current.Reset()
			case inPara && parent() == "r":
				switch name {
				case "t":
					inText = true
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch {
			case name == "t":
				inText = false
			case name == "p" && inPara && parent() == "body":
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// WriteParagraphs atomically writes a new .docx holding one plain paragraph
// per entry.
func WriteParagraphs(path string, paragraphs []string) error {
	body, err := documentXML(paragraphs)
	if err != nil {
		return err
	}

	out, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer out.Cleanup()
	if err := out.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	zw := zip.NewWriter(out)
	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{documentPart, body},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("add %s: %w", p.name, err)
		}
		if _, err := io.WriteString(w, p.data); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish docx: %w", err)
	}

	if err := out.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func documentXML(paragraphs []string) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, p := range paragraphs {
		if p == "" {
			sb.WriteString(`<w:p/>`)
			continue
		}
		sb.WriteString(`<w:p><w:r>`)
		if err := writeRunContent(&sb, p); err != nil {
			return "", err
		}
		sb.WriteString(`</w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)
	return sb.String(), nil
}

// writeRunContent emits text as w:t pieces separated by w:tab and w:br.
func writeRunContent(sb *strings.Builder, text string) error {
	start := 0
	flush := func(end int) error {
		if end <= start {
			return nil
		}
		sb.WriteString(`<w:t xml:space="preserve">`)
		if err := xml.EscapeText(sb, []byte(text[start:end])); err != nil {
			return fmt.Errorf("escape paragraph text: %w", err)
		}
		sb.WriteString(`</w:t>`)
		return nil
	}

	for i := 0; i < len(text); i++ {
		var tag string
		switch text[i] {
		case '\t':
			tag = `<w:tab/>`
		case '\n':
			tag = `<w:br/>`
		default:
			continue
		}
		if err := flush(i); err != nil {
			return err
		}
		sb.WriteString(tag)
		start = i + 1
	}
	return flush(len(text))
}
