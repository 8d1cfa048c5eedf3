package constants

// EEPROM footprint of a programmed jingle. The wire protocol itself is
// textual; these sizes only matter for the pre-flight capacity check.
// 4 header bytes per jingle (note counts per channel), 6 bytes per note
// (duty cycle, frequency, duration).
const JingleHeaderBytes = 4
const BytesPerNote = 6

// EEPROM budget the firmware reserves for jingle data. Programming
// attempts estimated above this are rejected up front.
const JingleDataMaxBytes = 1024

// Duty cycle sent with every note command. The firmware reads this as
// x/256 of the PWM period.
const NoteDutyCycle = 128

// Defaults used until the score says otherwise.
const DefaultBPM = 100
const DefaultDivisions = 1
