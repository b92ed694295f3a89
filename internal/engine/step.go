package engine

// Step — определение одного шага workflow.
//
// Шаг неизменяем после добавления в Graph: AddStep нормализует входы
// (классифицирует литералы и ссылки) один раз, и дальше шаг только
// читается.
type Step struct {
	// Name — уникальное имя шага в рамках workflow.
	// Используется в DependsOn и для ссылок на результат ("$name").
	Name string

	// Agent — имя агента, который выполняет шаг.
	// Резолвится через реестр агентов в момент выполнения.
	Agent string

	// Inputs — входные параметры шага.
	// Значение — литерал, строка-ссылка "$name" или готовый Value.
	Inputs map[string]any

	// DependsOn — имена шагов, которые должны завершиться раньше.
	// Единственный источник порядка выполнения: ссылка в Inputs
	// сама по себе зависимость не создаёт.
	DependsOn []string

	// Condition — опциональная ссылка-условие ("$name").
	// Пустая строка — шаг выполняется всегда.
	Condition string

	// values — нормализованные входы (заполняется при AddStep).
	values map[string]Value

	// condRef — имя ссылки условия без маркера (заполняется при AddStep).
	condRef string
}

// normalize классифицирует входы и условие шага.
// Вызывается один раз при добавлении шага в граф.
func (s *Step) normalize() error {
	s.values = make(map[string]Value, len(s.Inputs))
	for key, raw := range s.Inputs {
		s.values[key] = ParseValue(raw)
	}

	if s.Condition == "" {
		return nil
	}

	name, ok := parseRef(s.Condition)
	if !ok {
		return NewDefinitionError(s.Name, "condition",
			"condition must be a reference like \"$step\": "+s.Condition,
			ErrInvalidCondition)
	}
	s.condRef = name

	return nil
}

// HasCondition возвращает true, если у шага есть условие выполнения.
func (s *Step) HasCondition() bool {
	return s.condRef != ""
}
