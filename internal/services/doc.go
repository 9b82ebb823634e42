// Package services orchestrates the two pipelines.
//
// IngestionService is the body of the HTTP trigger: it downloads the dataset
// blob, averages the macronutrients per diet type and writes the JSON
// snapshot. AnalysisService runs the local batch analysis over a CSV file and
// produces charts, a workbook and a cleaned CSV.
//
// Services take their collaborators through constructors and log through an
// injected *slog.Logger.
package services
