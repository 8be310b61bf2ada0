package main

// General API documentation for swaggo. Run `swag init` to regenerate docs.
//
// @title           llmbridge API
// @version         1.0
// @description     Local HTTP surface over the llmbridge native bridge: model context lifecycle and structured generation.
//
// @contact.name   llmbridge maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
