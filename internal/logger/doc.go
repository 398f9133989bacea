// Package logger carries a zap sugared logger through context.Context.
//
// Commands name the logger once with WithName and pass the context down, so
// every line of an installer run is tagged with the tool that wrote it. The
// runtime level is shared and can be lowered per logger with WithLevel.
package logger
