// Package i18n resolves the request language for the postdesk UI.
package i18n
