// package formatter provides functions to export dashboard data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"schedctl/internal/feed"
	"schedctl/internal/models"
)

// LogsToCSV converts feed entries to CSV format with columns: ID, Timestamp, Level, Message.
// Messages are cleaned of their redundant embedded prefix.
func LogsToCSV(entries []models.FeedEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Timestamp", "Level", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.TS,
			string(entry.Level),
			feed.CleanMessage(entry.Msg),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TimelineToMarkdown converts the sync-health window to a Markdown report.
func TimelineToMarkdown(days []models.TimelineDay) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Sync health\n\n")
	buf.WriteString(fmt.Sprintf("**Days**: %d\n\n", len(days)))

	buf.WriteString("| Date | Status | Message |\n")
	buf.WriteString("| --- | --- | --- |\n")
	for _, day := range days {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", day.Date, day.Status, day.Message))
	}

	return buf.Bytes()
}

// OverviewToText converts a scheduler overview to plain text format.
func OverviewToText(overview *models.SchedulerOverview) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Scheduler: %s\n", overview.Status))
	if len(overview.Intervals) > 0 {
		buf.WriteString("Runs at:")
		for _, interval := range overview.Intervals {
			buf.WriteString(" " + interval)
		}
		buf.WriteString("\n")
	}
	buf.WriteString(fmt.Sprintf("Recent runs: %d\n\n", len(overview.Runs)))

	for i, run := range overview.Runs {
		buf.WriteString(fmt.Sprintf("%d. %s %s", i+1, run.Time, run.Status))
		if run.Detail != nil && *run.Detail != "" {
			buf.WriteString(" - " + *run.Detail)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// WriteLogsCSV exports feed entries to a CSV file.
//
// Defaults to logs.csv as the filename.
func WriteLogsCSV(entries []models.FeedEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = "logs.csv"
	}

	csvData, err := LogsToCSV(entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteTimelineMarkdown exports the sync-health window to a Markdown file.
//
// Defaults to timeline.md as the filename.
func WriteTimelineMarkdown(days []models.TimelineDay, filepath string) (string, error) {
	if filepath == "" {
		filepath = "timeline.md"
	}

	if err := os.WriteFile(filepath, TimelineToMarkdown(days), 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}
