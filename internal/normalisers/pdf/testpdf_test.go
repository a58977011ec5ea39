package pdf

import (
	"strconv"
	"strings"
)

// buildTestPDF creates a valid PDF with proper xref offsets. Each page is a
// list of lines drawn top to bottom. keywords, when non-empty, is written to
// the document information dictionary.
func buildTestPDF(keywords string, pages ...[]string) []byte {
	streams := make([]string, 0, len(pages))
	for _, lines := range pages {
		streams = append(streams, contentStream(lines))
	}
	return buildStreamPDF(keywords, streams...)
}

// buildStreamPDF is buildTestPDF with one raw content stream per page.
func buildStreamPDF(keywords string, streams ...string) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font, then an optional info dict,
	// then a page object and a content stream per page.
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>", "", "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	infoRef := ""
	if keywords != "" {
		objects = append(objects, "<< /Title (Test) /Keywords ("+escapePDF(keywords)+") >>")
		infoRef = " /Info " + strconv.Itoa(len(objects)) + " 0 R"
	}

	var kids []string
	for _, stream := range streams {
		pageNr := len(objects) + 1
		contentNr := pageNr + 1
		objects = append(objects,
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents "+strconv.Itoa(contentNr)+
				" 0 R /Resources << /Font << /F1 3 0 R >> >> >>",
			"<< /Length "+strconv.Itoa(len(stream))+" >>\nstream\n"+stream+"\nendstream",
		)
		kids = append(kids, strconv.Itoa(pageNr)+" 0 R")
	}
	objects[1] = "<< /Type /Pages /Kids [" + strings.Join(kids, " ") + "] /Count " + strconv.Itoa(len(streams)) + " >>"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		b.WriteString(strconv.Itoa(i+1) + " 0 obj\n" + obj + "\nendobj\n")
	}

	size := strconv.Itoa(len(objects) + 1)
	xrefOffset := b.Len()
	b.WriteString("xref\n0 " + size + "\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		b.WriteString(padOffset(offsets[i]) + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size " + size + " /Root 1 0 R" + infoRef + " >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

func contentStream(lines []string) string {
	parts := []string{"BT", "/F1 12 Tf", "72 720 Td"}
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, "0 -14 Td")
		}
		parts = append(parts, "("+escapePDF(line)+") Tj")
	}
	parts = append(parts, "ET")
	return strings.Join(parts, "\n")
}

func escapePDF(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}

func padOffset(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}
