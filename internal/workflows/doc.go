// Package workflows содержит готовые workflow системы.
//
// Каждый workflow — функция, собирающая engine.Graph, плюс
// регистрация нужных ему агентов в реестре.
package workflows
