package engine

import "fmt"

// Graph — граф шагов одного workflow.
//
// Строится инкрементально через AddStep до выполнения и после этого
// только читается: один Graph может безопасно использоваться
// несколькими одновременными выполнениями, каждое со своим Result.
type Graph struct {
	// name — имя workflow.
	name string

	// steps — шаги в порядке добавления.
	// Порядок добавления — единственный tie-break топологической
	// сортировки, поэтому он сохраняется явно.
	steps []*Step

	// index — шаги по имени.
	index map[string]*Step

	// defErr — первая отложенная ошибка определения.
	// AddStep поддерживает цепочку вызовов, поэтому ошибки
	// всплывают при ResolveOrder (или первом Execute).
	defErr error
}

// NewGraph создаёт пустой граф workflow.
func NewGraph(name string) *Graph {
	return &Graph{
		name:  name,
		index: make(map[string]*Step),
	}
}

// Name возвращает имя workflow.
func (g *Graph) Name() string {
	return g.name
}

// AddStep регистрирует шаг и возвращает граф для цепочки вызовов.
//
// Ошибки определения (пустое или дублирующееся имя, невалидное
// условие) откладываются и всплывают при ResolveOrder или первом
// выполнении. Зависимость на ещё не добавленный шаг ошибкой не
// является — шаги можно добавлять в любом порядке, полная проверка
// зависимостей происходит в ResolveOrder.
func (g *Graph) AddStep(step Step) *Graph {
	if err := g.addStep(step); err != nil && g.defErr == nil {
		g.defErr = err
	}
	return g
}

// Add регистрирует шаг и сразу возвращает ошибку определения.
func (g *Graph) Add(step Step) error {
	if err := g.addStep(step); err != nil {
		return err
	}
	return nil
}

func (g *Graph) addStep(step Step) error {
	if step.Name == "" {
		return NewDefinitionError("", "name", "step has empty name", ErrEmptyStepName)
	}
	if step.Agent == "" {
		return NewDefinitionError(step.Name, "agent", "step has empty agent name", ErrEmptyAgentName)
	}
	if _, exists := g.index[step.Name]; exists {
		return NewDefinitionError(step.Name, "name",
			fmt.Sprintf("duplicate step name: %s", step.Name), ErrDuplicateStep)
	}

	if err := step.normalize(); err != nil {
		return err
	}

	s := &step
	g.steps = append(g.steps, s)
	g.index[step.Name] = s

	return nil
}

// Step возвращает шаг по имени.
func (g *Graph) Step(name string) (*Step, bool) {
	s, ok := g.index[name]
	return s, ok
}

// Len возвращает количество шагов.
func (g *Graph) Len() int {
	return len(g.steps)
}

// Err возвращает первую отложенную ошибку определения.
func (g *Graph) Err() error {
	return g.defErr
}

// ResolveOrder возвращает имена шагов в порядке выполнения:
// каждый шаг идёт после всех своих зависимостей.
//
// Среди шагов, готовых к размещению одновременно, порядок определяется
// порядком добавления (стабильный, детерминированный tie-break).
// Повторные вызовы на неизменённом графе возвращают идентичную
// последовательность. Побочных эффектов нет.
func (g *Graph) ResolveOrder() ([]string, error) {
	if g.defErr != nil {
		return nil, g.defErr
	}

	if err := g.validateDependencies(); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(g.steps))
	placed := make(map[string]bool, len(g.steps))

	// Аналог алгоритма Кана, но вместо очереди — повторные проходы
	// по шагам в порядке добавления: это и даёт insertion-order
	// tie-break без дополнительных структур.
	for len(order) < len(g.steps) {
		progress := false

		for _, step := range g.steps {
			if placed[step.Name] {
				continue
			}
			if !g.depsPlaced(step, placed) {
				continue
			}

			order = append(order, step.Name)
			placed[step.Name] = true
			progress = true
		}

		if !progress {
			// Остались шаги с неразрешимыми зависимостями — цикл.
			// Называем первый по порядку добавления.
			for _, step := range g.steps {
				if !placed[step.Name] {
					return nil, NewDefinitionError(step.Name, "depends_on",
						fmt.Sprintf("cyclic dependency involving step: %s", step.Name),
						ErrCyclicDependency)
				}
			}
		}
	}

	return order, nil
}

// validateDependencies проверяет, что все depends_on ссылаются на
// существующие шаги и ни один шаг не зависит от самого себя.
func (g *Graph) validateDependencies() error {
	for _, step := range g.steps {
		for _, dep := range step.DependsOn {
			if dep == step.Name {
				return NewDefinitionError(step.Name, "depends_on",
					"step depends on itself", ErrSelfDependency)
			}
			if _, ok := g.index[dep]; !ok {
				return NewDefinitionError(step.Name, "depends_on",
					fmt.Sprintf("depends on unknown step: %s", dep), ErrUnknownDependency)
			}
		}
	}
	return nil
}

// depsPlaced проверяет, что все зависимости шага уже размещены.
func (g *Graph) depsPlaced(step *Step, placed map[string]bool) bool {
	for _, dep := range step.DependsOn {
		if !placed[dep] {
			return false
		}
	}
	return true
}
