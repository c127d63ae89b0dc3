package bookcat

// Version is the current version of the bookcat module.
const Version = "0.3.0"
