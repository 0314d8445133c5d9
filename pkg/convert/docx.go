package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// visibleURLPattern detects whether a paragraph's visible text already
// carries a URL.
var visibleURLPattern = regexp.MustCompile(`(?i)https?://\S+`)

// Docx extracts paragraph text from a .docx document. Paragraphs are
// emitted blank-line separated. Hyperlink relationship targets are appended
// to a paragraph whose visible text shows no URL, so that "available at"
// phrases pointing at a hyperlinked run keep their URL through conversion.
func Docx(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	linkTargets, err := readHyperlinkTargets(archive)
	if err != nil {
		return "", err
	}

	document, err := readArchiveFile(archive, "word/document.xml")
	if err != nil {
		return "", err
	}

	return extractDocumentText(document, linkTargets)
}

// docxRelationships mirrors word/_rels/document.xml.rels.
type docxRelationships struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// readHyperlinkTargets maps relationship IDs to hyperlink targets. The rels
// part is optional; a document without it simply has no hyperlinks.
func readHyperlinkTargets(archive *zip.Reader) (map[string]string, error) {
	data, err := readArchiveFile(archive, "word/_rels/document.xml.rels")
	if err != nil {
		return map[string]string{}, nil
	}

	var rels docxRelationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse docx relationships: %w", err)
	}

	targets := make(map[string]string)
	for _, rel := range rels.Relationships {
		if strings.HasSuffix(rel.Type, "/hyperlink") {
			targets[rel.ID] = rel.Target
		}
	}
	return targets, nil
}

// extractDocumentText walks the WordprocessingML token stream, collecting
// run text per paragraph.
func extractDocumentText(document []byte, linkTargets map[string]string) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(document))

	var out strings.Builder
	var para strings.Builder
	var paraLinks []string
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx document: %w", err)
		}

		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteString(" ")
			case "br":
				para.WriteString(" ")
			case "hyperlink":
				for _, attr := range element.Attr {
					if attr.Name.Local != "id" {
						continue
					}
					if target, ok := linkTargets[attr.Value]; ok && !containsString(paraLinks, target) {
						paraLinks = append(paraLinks, target)
					}
				}
			}
		case xml.CharData:
			if inText {
				para.Write(element)
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(para.String())
				if text != "" {
					if !visibleURLPattern.MatchString(text) && len(paraLinks) > 0 {
						text = text + " " + strings.Join(paraLinks, " ")
					}
					out.WriteString(text)
					out.WriteString("\n\n")
				}
				para.Reset()
				paraLinks = nil
			}
		}
	}

	return out.String(), nil
}

// readArchiveFile reads one file out of the docx zip.
func readArchiveFile(archive *zip.Reader, name string) ([]byte, error) {
	for _, file := range archive.File {
		if file.Name != name {
			continue
		}
		reader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer reader.Close()
		return io.ReadAll(reader)
	}
	return nil, fmt.Errorf("docx archive missing %s", name)
}

func containsString(values []string, value string) bool {
	for _, existing := range values {
		if existing == value {
			return true
		}
	}
	return false
}
