package internal

// Version is the ankivocab release version, overridable at build time via
// -ldflags "-X codeberg.org/snonux/ankivocab/internal.Version=..."
var Version = "0.3.1"
