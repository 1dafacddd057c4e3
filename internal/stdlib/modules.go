package stdlib

import (
	"embed"
	"sort"
	"strings"
)

//go:embed tact/*.tact
var sources embed.FS

// Effect classifies what calling a standard library function does besides
// computing its result.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSend queues an outgoing message.
	EffectSend
	// EffectThrow always aborts the transaction.
	EffectThrow
	// EffectAssert aborts the transaction unless its condition holds.
	EffectAssert
)

// ModuleDefinition defines a standard library module
type ModuleDefinition struct {
	Name string // Module name (e.g., "deploy")
	Path string // Import path (e.g., "@stdlib/deploy")
	File string // Embedded source backing the module
}

// FunctionDefinition defines a global function or a method of BaseTrait
type FunctionDefinition struct {
	Name     string
	Effect   Effect
	IsMethod bool // called as self.name(...)
}

// CorePath is the path of the implicitly imported core library.
const CorePath = "@stdlib/std"

var modules = map[string]*ModuleDefinition{
	CorePath:            {Name: "std", Path: CorePath, File: "tact/std.tact"},
	"@stdlib/deploy":    {Name: "deploy", Path: "@stdlib/deploy", File: "tact/deploy.tact"},
	"@stdlib/ownable":   {Name: "ownable", Path: "@stdlib/ownable", File: "tact/ownable.tact"},
	"@stdlib/stoppable": {Name: "stoppable", Path: "@stdlib/stoppable", File: "tact/stoppable.tact"},
}

var functions = map[string]FunctionDefinition{
	"send":              {Name: "send", Effect: EffectSend},
	"message":           {Name: "message", Effect: EffectSend},
	"deploy":            {Name: "deploy", Effect: EffectSend},
	"emit":              {Name: "emit", Effect: EffectSend},
	"cashback":          {Name: "cashback", Effect: EffectSend},
	"nativeSendMessage": {Name: "nativeSendMessage", Effect: EffectSend},
	"sendRawMessage":    {Name: "sendRawMessage", Effect: EffectSend},

	"throw":       {Name: "throw", Effect: EffectThrow},
	"nativeThrow": {Name: "nativeThrow", Effect: EffectThrow},

	"require":           {Name: "require", Effect: EffectAssert},
	"throwIf":           {Name: "throwIf", Effect: EffectAssert},
	"throwUnless":       {Name: "throwUnless", Effect: EffectAssert},
	"nativeThrowIf":     {Name: "nativeThrowIf", Effect: EffectAssert},
	"nativeThrowUnless": {Name: "nativeThrowUnless", Effect: EffectAssert},
}

var methods = map[string]FunctionDefinition{
	"reply":   {Name: "reply", Effect: EffectSend, IsMethod: true},
	"notify":  {Name: "notify", Effect: EffectSend, IsMethod: true},
	"forward": {Name: "forward", Effect: EffectSend, IsMethod: true},
}

// GetStandardModules returns all built-in standard library modules
func GetStandardModules() map[string]*ModuleDefinition {
	return modules
}

// IsKnownModule checks if an import path names a standard library module
func IsKnownModule(modulePath string) bool {
	_, exists := modules[modulePath]
	return exists
}

// IsStdlibPath reports whether an import path points into the standard library.
func IsStdlibPath(importPath string) bool {
	return strings.HasPrefix(importPath, "@stdlib/")
}

// GetModuleDefinition returns the definition for a standard library module
func GetModuleDefinition(modulePath string) *ModuleDefinition {
	return modules[modulePath]
}

// ModulePaths returns the known import paths in sorted order.
func ModulePaths() []string {
	paths := make([]string, 0, len(modules))
	for p := range modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Source returns the Tact source of a module.
func (m *ModuleDefinition) Source() (string, error) {
	data, err := sources.ReadFile(m.File)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LookupFunction returns the definition of a global stdlib function.
func LookupFunction(name string) (FunctionDefinition, bool) {
	def, ok := functions[name]
	return def, ok
}

// LookupMethod returns the definition of a stdlib method called on self.
func LookupMethod(name string) (FunctionDefinition, bool) {
	def, ok := methods[name]
	return def, ok
}

// IsSendFunction reports whether the global function name sends a message.
func IsSendFunction(name string) bool {
	return functions[name].Effect == EffectSend
}

// IsSendMethod reports whether self.name(...) sends a message.
func IsSendMethod(name string) bool {
	return methods[name].Effect == EffectSend
}

// IsThrowFunction reports whether calling name never returns normally.
func IsThrowFunction(name string) bool {
	return functions[name].Effect == EffectThrow
}

// IsAssertFunction reports whether name aborts when its condition fails.
func IsAssertFunction(name string) bool {
	return functions[name].Effect == EffectAssert
}
