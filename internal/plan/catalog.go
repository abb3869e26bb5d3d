package plan

import (
	"errors"
	"fmt"
)

// TaskTemplate is the static content a Task is instantiated from.
type TaskTemplate struct {
	Name           string
	Description    string
	EstimatedHours float64
}

// StageTemplate is the static content a Stage is instantiated from.
type StageTemplate struct {
	Name              string
	Description       string
	PercentageOfTotal int
	Tasks             []TaskTemplate
}

// Catalog is the ordered list of stage templates a plan is built from.
type Catalog []StageTemplate

const minTasksPerStage = 2

var defaultCatalog = Catalog{
	{
		Name:              "Escolha do tema",
		Description:       "Definição e refinamento do tema de pesquisa",
		PercentageOfTotal: 5,
		Tasks: []TaskTemplate{
			{Name: "Pesquisa inicial de temas", Description: "Explore possíveis temas de interesse", EstimatedHours: 4},
			{Name: "Consulta com orientador", Description: "Agende uma reunião para discutir o tema", EstimatedHours: 2},
			{Name: "Definição final do tema", Description: "Delimite o escopo do seu trabalho", EstimatedHours: 3},
		},
	},
	{
		Name:              "Referencial teórico",
		Description:       "Pesquisa e organização de fontes bibliográficas",
		PercentageOfTotal: 25,
		Tasks: []TaskTemplate{
			{Name: "Pesquisa bibliográfica", Description: "Encontre artigos, livros e outras fontes relevantes", EstimatedHours: 12},
			{Name: "Leitura e fichamento", Description: "Organize as informações coletadas", EstimatedHours: 15},
			{Name: "Redação inicial do referencial", Description: "Escreva a primeira versão do seu referencial teórico", EstimatedHours: 10},
		},
	},
	{
		Name:              "Metodologia",
		Description:       "Definição dos métodos de pesquisa",
		PercentageOfTotal: 15,
		Tasks: []TaskTemplate{
			{Name: "Escolha do método", Description: "Defina a abordagem metodológica", EstimatedHours: 5},
			{Name: "Elaboração de instrumentos", Description: "Crie questionários, roteiros ou outros instrumentos", EstimatedHours: 7},
			{Name: "Validação metodológica", Description: "Discuta a metodologia com o orientador", EstimatedHours: 3},
		},
	},
	{
		Name:              "Cronograma",
		Description:       "Planejamento detalhado das atividades",
		PercentageOfTotal: 5,
		Tasks: []TaskTemplate{
			{Name: "Elaboração do cronograma", Description: "Organize as atividades e prazos", EstimatedHours: 4},
			{Name: "Ajuste com o orientador", Description: "Revise o cronograma com seu orientador", EstimatedHours: 2},
		},
	},
	{
		Name:              "Escrita dos capítulos",
		Description:       "Redação do corpo principal do trabalho",
		PercentageOfTotal: 30,
		Tasks: []TaskTemplate{
			{Name: "Introdução", Description: "Escreva a introdução do seu trabalho", EstimatedHours: 6},
			{Name: "Desenvolvimento", Description: "Redija os capítulos principais", EstimatedHours: 20},
			{Name: "Resultados", Description: "Apresente e discuta os resultados", EstimatedHours: 10},
			{Name: "Conclusão", Description: "Escreva as considerações finais", EstimatedHours: 6},
		},
	},
	{
		Name:              "Revisão",
		Description:       "Revisão completa do trabalho",
		PercentageOfTotal: 15,
		Tasks: []TaskTemplate{
			{Name: "Revisão de conteúdo", Description: "Verifique a coerência e consistência", EstimatedHours: 8},
			{Name: "Revisão ortográfica", Description: "Corrija erros de português e formatação", EstimatedHours: 5},
			{Name: "Revisão de normas", Description: "Confira a conformidade com as normas acadêmicas", EstimatedHours: 6},
		},
	},
	{
		Name:              "Apresentação",
		Description:       "Preparação para a defesa",
		PercentageOfTotal: 5,
		Tasks: []TaskTemplate{
			{Name: "Elaboração de slides", Description: "Crie uma apresentação visual", EstimatedHours: 5},
			{Name: "Ensaio da apresentação", Description: "Pratique sua apresentação oral", EstimatedHours: 4},
			{Name: "Defesa final", Description: "Apresente seu trabalho para a banca", EstimatedHours: 2},
		},
	},
}

// DefaultCatalog returns a copy of the seven built-in stages, in
// execution order.
func DefaultCatalog() Catalog {
	return defaultCatalog.clone()
}

func (c Catalog) clone() Catalog {
	out := make(Catalog, len(c))
	for i, st := range c {
		out[i] = st
		out[i].Tasks = append([]TaskTemplate(nil), st.Tasks...)
	}
	return out
}

// TotalPercentage returns the sum of the stage weights.
func (c Catalog) TotalPercentage() int {
	total := 0
	for _, st := range c {
		total += st.PercentageOfTotal
	}
	return total
}

// Validate checks that weights sum to 100 and that every stage carries
// enough tasks with positive estimates.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New("catalog has no stages")
	}

	var errs []error
	if total := c.TotalPercentage(); total != 100 {
		errs = append(errs, fmt.Errorf("stage weights sum to %d, want 100", total))
	}
	for _, st := range c {
		if st.PercentageOfTotal < 0 {
			errs = append(errs, fmt.Errorf("stage %q: negative weight %d", st.Name, st.PercentageOfTotal))
		}
		if len(st.Tasks) < minTasksPerStage {
			errs = append(errs, fmt.Errorf("stage %q: has %d tasks, want at least %d", st.Name, len(st.Tasks), minTasksPerStage))
		}
		for _, t := range st.Tasks {
			if t.EstimatedHours <= 0 {
				errs = append(errs, fmt.Errorf("stage %q: task %q has non-positive estimate", st.Name, t.Name))
			}
		}
	}
	return errors.Join(errs...)
}
