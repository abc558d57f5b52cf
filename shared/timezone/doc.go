// Package timezone keeps every booking date in the guest house's own zone.
// The zone is read from APP_TIMEZONE on first use, as an IANA name such as
// "Africa/Accra" or "UTC".
package timezone
