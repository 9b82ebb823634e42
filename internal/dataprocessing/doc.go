// Package dataprocessing turns the All Diets CSV into per-diet aggregates.
//
// # Components
//
// 1. Parser: reads CSV bytes into a Frame backed by a gota DataFrame
// 2. Cleaner: mean imputation, ratio derivation and infinity removal
// 3. Aggregator: per-diet means, top-N protein rows, cuisine counts
//
// # Data Flow
//
// The ingestion flow only parses and aggregates:
//
//	frame, err := dataprocessing.ParseCSV(bytes.NewReader(data))
//	averages, err := dataprocessing.AverageMacros(frame)
//
// The local flow cleans in two passes around the ratio derivation:
//
//	CSV → Parse → FillMissingWithMean → AverageMacros / TopProteinPerDiet
//	    → DeriveRatios → ReplaceInfinite → FillMissingWithMean → MostCommonCuisines
//
// # Missing Values
//
// Empty cells and NA/NaN/null markers load as missing. Numeric missing values
// are NaN and categorical ones are empty strings. Rows with a missing diet
// type never form a group.
//
// # Error Handling
//
// Malformed CSV and absent required columns return PARSING errors. A diet
// group with no value at all for a macronutrient returns an AGGREGATION
// error instead of a made-up mean.
package dataprocessing
