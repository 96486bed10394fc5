package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data interface{}) error {
	// Default implementation - can be enhanced per data type
	fmt.Printf("%+v\n", data)
	return nil
}

// suggestions offered alongside classified errors in every output mode
var suggestions = map[string]string{
	"PROJECT_NOT_FOUND": "List projects with: poise project list",
	"PROJECT_FINALISED": "Finalised projects are read-only. View it with: poise project show <number>",
	"STORE_UNAVAILABLE": "Check database.driver and database.dsn in your config, or POISE_DATABASE_DSN",
}

// Fail reports err in the formatter's mode and returns an *ExitCodeError whose
// code matches the error's class.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := Classify(err)
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestions[code]); fmtErr != nil {
		log.Printf("Error formatting error message: %v", fmtErr)
	}
	return &ExitCodeError{Code: exit, Err: err}
}

// Usage reports a usage error and returns an *ExitCodeError with ExitUsage
func (f *OutputFormatter) Usage(message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion("USAGE_ERROR", message, suggestion); fmtErr != nil {
		log.Printf("Error formatting error message: %v", fmtErr)
	}
	return &ExitCodeError{Code: ExitUsage, Err: errors.New(message)}
}
