// Package language maps ISO 639-1 codes to the ISO 639-2 codes media
// containers expect and to human-readable display names.
package language
