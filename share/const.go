package share

// VERSION mongoverify version
const VERSION = "0.1.0"

// PRVERSION the commit and build time, set when releasing
const PRVERSION = "DEV"

// BUILDNAME The name of the artifact
const BUILDNAME = "mongoverify"
