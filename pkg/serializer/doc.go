// Package serializer renders planning results to various output formats.
//
// The package supports three output formats:
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - Table: Human-readable tabular output with flattened keys
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	defer writer.Close() // Important: close to release file handles
//	if err := writer.Serialize(ctx, result); err != nil {
//		log.Fatal(err)
//	}
//
// The table format flattens nested structures into dotted keys and renders
// resource types by their display names. It is write-only; JSON and YAML
// round-trip through the result's struct tags.
package serializer
