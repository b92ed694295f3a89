// Package agents содержит агентов и их реестр.
//
// Агент — именованная единица работы: принимает словарь входов и
// возвращает результат. Ошибки агента возвращаются через error и
// обрабатываются runner'ом, агент не знает про граф и порядок.
//
// Registry хранит агентов по имени; Instrument оборачивает агента
// в логирование и Prometheus-метрики.
package agents
