// Package exporter writes analysis results to disk.
//
// JSONResultWriter stores the per-diet averages as the JSON snapshot read by
// downstream consumers. WorkbookExporter writes an Excel workbook with one
// sheet per result table. CSVWriter dumps the cleaned dataset, ratio columns
// included, with an optional UTF-8 BOM for Excel.
//
// Every writer creates missing parent directories and overwrites existing
// files.
//
//	writer := exporter.NewJSONResultWriter("simulated_nosql/results.json")
//	if err := writer.Write(averages); err != nil {
//	    return err
//	}
package exporter
