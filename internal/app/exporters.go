package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ExportFilename returns the download name for a selection, e.g.
// timeline_Science_1969.csv
func ExportFilename(sel FilterSelection, ext string) string {
	category := unsafeFilenameChars.ReplaceAllString(NormalizeCategory(sel.Category), "-")
	return fmt.Sprintf("timeline_%s_%s.%s", category, sel.Year, ext)
}

// WriteCSV writes events as CSV with a header row
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "year", "title", "category", "description", "imageURL"}); err != nil {
		return err
	}
	for _, e := range events {
		row := []string{
			strconv.Itoa(e.ID),
			strconv.Itoa(e.Year),
			e.Title,
			e.Category,
			e.Description,
			e.ImageURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes events together with the selection that produced them
func WriteJSON(w io.Writer, sel FilterSelection, events []Event) error {
	if events == nil {
		events = []Event{}
	}
	data := map[string]interface{}{
		"category": NormalizeCategory(sel.Category),
		"year":     sel.Year.String(),
		"count":    len(events),
		"events":   events,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// GenerateCSV sends the events as a CSV download. The body is built
// before any header is written so a failure can still answer 500.
func GenerateCSV(w http.ResponseWriter, sel FilterSelection, events []Event) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, events); err != nil {
		log.Printf("Error writing CSV export: %v", err)
		http.Error(w, ErrFailedToGenCSV, http.StatusInternalServerError)
		return
	}
	sendAttachment(w, "text/csv; charset=utf-8", ExportFilename(sel, "csv"), buf.Bytes())
}

// GenerateJSON sends the events as a JSON download
func GenerateJSON(w http.ResponseWriter, sel FilterSelection, events []Event) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sel, events); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrFailedToGenJSON, http.StatusInternalServerError)
		return
	}
	sendAttachment(w, "application/json; charset=utf-8", ExportFilename(sel, "json"), buf.Bytes())
}

func sendAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		log.Printf("Error sending %s: %v", filename, err)
	}
}
