// Package submission validates answers collected for a Page. Structural rules
// (required answers, lengths, option membership, answer counts, patterns) are
// expressed as an OpenAPI schema and checked with kin-openapi; expression
// validators and visibility rules run through the visibility/expr evaluator.
package submission
