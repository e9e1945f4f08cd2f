package config

// SourceFileExt is the canonical ucode source file extension.
const SourceFileExt = ".uc"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".uc", ".ucode"}

// ConfigFileName is the optional per-workspace configuration file.
const ConfigFileName = "ucls.yaml"

// LanguageID is the LSP language identifier served by this server.
const LanguageID = "ucode"

// DiagnosticSource is the source tag attached to published diagnostics.
const DiagnosticSource = "ucls"

// TypeFuncName is the builtin whose string result drives tag guards,
// as in `if (type(x) == "int") { ... }`.
const TypeFuncName = "type"
