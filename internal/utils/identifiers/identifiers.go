// Package identifiers formats the human-readable record identifiers minted
// from the atomic sequence counters. The counter namespace embeds year and
// record type, so a sequence value is unique within its namespace.
package identifiers

import (
	"fmt"
	"strings"
)

const (
	receiptPrefix = "RK-FEE-"
	slipPrefix    = "RK-SAL-"
	instituteCode = "RK"
	teacherCode   = "TCH"
)

// ReceiptNamespace returns the counter namespace for fee receipts of a year.
func ReceiptNamespace(year int) string {
	return fmt.Sprintf("%s%d", receiptPrefix, year)
}

// SlipNamespace returns the counter namespace for salary slips of a year.
func SlipNamespace(year int) string {
	return fmt.Sprintf("%s%d", slipPrefix, year)
}

// CourseNamespace returns the counter namespace for certificate and
// student numbers of a year and course.
func CourseNamespace(year int, courseCode string) string {
	return fmt.Sprintf("%s%d%s", instituteCode, year, strings.ToUpper(courseCode))
}

// TeacherNamespace returns the counter namespace for teacher IDs of a year.
func TeacherNamespace(year int) string {
	return fmt.Sprintf("%s%d%s", instituteCode, year, teacherCode)
}

// FormatReceiptNumber renders RK-FEE-<year>-<5-digit sequence>.
func FormatReceiptNumber(year int, seq int64) string {
	return fmt.Sprintf("%s%d-%05d", receiptPrefix, year, seq)
}

// FormatSlipNumber renders RK-SAL-<year>-<5-digit sequence>.
func FormatSlipNumber(year int, seq int64) string {
	return fmt.Sprintf("%s%d-%05d", slipPrefix, year, seq)
}

// FormatCertificateNumber renders RK<year><4-letter course code><3-digit sequence>.
func FormatCertificateNumber(year int, courseCode string, seq int64) string {
	return fmt.Sprintf("%s%d%s%03d", instituteCode, year, strings.ToUpper(courseCode), seq)
}

// FormatTeacherNumber renders RK<year>TCH<3-digit sequence>.
func FormatTeacherNumber(year int, seq int64) string {
	return fmt.Sprintf("%s%d%s%03d", instituteCode, year, teacherCode, seq)
}

// NormalizeLookupKey canonicalizes a publicly entered identifier (receipt
// number, student number, certificate number) for exact-match lookup.
func NormalizeLookupKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
