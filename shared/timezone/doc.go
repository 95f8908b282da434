// Package timezone pins every wall-clock and calendar-date computation to the
// application timezone configured by APP_TIMEZONE (an IANA name such as
// "Asia/Jakarta"). Today and Date give local midnight for "which calendar day is it"
// questions; the day itself, not the instant, is what callers should compare.
package timezone
