package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/domain"
	"advisor/internal/lexical"
)

func newExtractor() *Extractor {
	return New(lexical.NewAnalyzer())
}

func results(texts ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, len(texts))
	for i, text := range texts {
		out[i] = domain.SearchResult{
			DocumentID: "doc",
			Document:   domain.Document{ID: "doc", Text: text},
			Score:      0.2,
			Text:       text,
		}
	}
	return out
}

func TestExtractAmountPicksContextGatedMax(t *testing.T) {
	// the larger amount belongs to a different category and must lose
	e := newExtractor()
	combined := "Академическая стипендия составляет 1500 руб. в месяц. Повышенная стипендия 3000 руб. в месяц."

	answer, confidence := e.Extract("сколько составляет академическая стипендия",
		domain.QuestionAmount, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "1500")
	assert.NotContains(t, answer, "3000")
	assert.Contains(t, answer, "в месяц")
	assert.Equal(t, 0.9, confidence)
}

func TestExtractAmountMaxAmongQualifying(t *testing.T) {
	e := newExtractor()
	combined := "академическая стипендия составляет 1500 руб. повышенная академическая надбавка 2500 руб."

	answer, confidence := e.Extract("сколько",
		domain.QuestionAmount, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "2500")
	assert.Equal(t, 0.9, confidence)
}

func TestExtractAmountSemesterPeriod(t *testing.T) {
	e := newExtractor()
	combined := "специальная стипендия 5000 ₽ в семестр"

	answer, confidence := e.Extract("сколько",
		domain.QuestionAmount, domain.ScholarshipSpecial, results(combined))

	assert.Contains(t, answer, "5000")
	assert.Contains(t, answer, "в семестр")
	assert.Equal(t, 0.9, confidence)
}

func TestExtractAmountFallsBackWithoutContext(t *testing.T) {
	// an amount with no category keyword nearby must not be reported
	e := newExtractor()
	combined := "стоимость обучения составляет 90000 руб. в семестр"

	answer, confidence := e.Extract("сколько составляет социальная стипендия",
		domain.QuestionAmount, domain.ScholarshipSocial, results(combined))

	assert.NotContains(t, answer, "Размер")
	assert.Equal(t, 0.6, confidence)
}

func TestExtractDefinition(t *testing.T) {
	e := newExtractor()
	combined := "академическая стипендия — это денежная выплата успевающим студентам. выплата производится ежемесячно."

	answer, confidence := e.Extract("что такое академическая стипендия",
		domain.QuestionDefinition, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "денежная выплата")
	assert.Equal(t, 0.8, confidence)
}

func TestExtractRequirements(t *testing.T) {
	e := newExtractor()
	combined := "Основное условие назначения — отсутствие задолженностей. Стипендия перечисляется на карту."

	answer, confidence := e.Extract("какие требования",
		domain.QuestionRequirements, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "Требования для получения академической стипендии")
	assert.Contains(t, answer, "отсутствие задолженностей")
	assert.NotContains(t, answer, "перечисляется на карту")
	assert.Equal(t, 0.85, confidence)
}

func TestExtractDeadline(t *testing.T) {
	e := newExtractor()
	combined := "Стипендия выплачивается до 25 числа каждого месяца. Размер определяется приказом."

	answer, confidence := e.Extract("когда выплачивается стипендия",
		domain.QuestionDeadline, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "до 25 числа")
	assert.Equal(t, 0.8, confidence)
}

func TestExtractProcedure(t *testing.T) {
	e := newExtractor()
	combined := "Чтобы оформить выплату, нужно подать заявление в деканат. Решение принимает комиссия."

	answer, confidence := e.Extract("как оформить",
		domain.QuestionProcedure, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "подать заявление")
	assert.Equal(t, 0.85, confidence)
}

func TestExtractFallbackBestSentence(t *testing.T) {
	e := newExtractor()
	combined := "социальная стипендия назначается студентам из малообеспеченных семей. размер составляет 2000 рублей в месяц."

	answer, confidence := e.Extract("кому назначается социальная стипендия",
		domain.QuestionGeneral, domain.ScholarshipSocial, results(combined))

	assert.Contains(t, answer, "малообеспеченных семей")
	assert.NotContains(t, answer, "2000")
	assert.Equal(t, 0.6, confidence)
}

func TestExtractFallbackMatchesThroughSynonyms(t *testing.T) {
	// «размер» and «сумма» share no stem; only synonym expansion links them
	e := newExtractor()
	combined := "сумма начислений зависит от успеваемости студента. заявление подается в деканат."

	answer, confidence := e.Extract("размер выплаты",
		domain.QuestionGeneral, domain.ScholarshipAcademic, results(combined))

	assert.Contains(t, answer, "сумма начислений")
	assert.NotContains(t, answer, "деканат")
	assert.Equal(t, 0.6, confidence)
}

func TestExtractFallbackTruncatesWhenNothingMatches(t *testing.T) {
	e := newExtractor()
	long := strings.Repeat("порядок назначения определяется локальным актом университета ", 20)
	require.Greater(t, len([]rune(long)), 500)

	answer, confidence := e.Extract("общежитие",
		domain.QuestionGeneral, domain.ScholarshipAcademic, results(long))

	assert.True(t, strings.HasSuffix(answer, "..."))
	assert.Len(t, []rune(answer), 503)
	assert.Equal(t, 0.6, confidence)
}

func TestSplitSentencesDropsEmptySegments(t *testing.T) {
	sentences := splitSentences("Первое предложение!!! Второе?  ")
	assert.Equal(t, []string{"Первое предложение", "Второе"}, sentences)
}

func TestUnmatchedStrategyFallsThrough(t *testing.T) {
	// a definition query over text without markers still yields an answer
	e := newExtractor()
	combined := "стипендия назначается приказом ректора."

	answer, confidence := e.Extract("что такое стипендия",
		domain.QuestionDefinition, domain.ScholarshipAcademic, results(combined))

	assert.NotEmpty(t, answer)
	assert.Equal(t, 0.6, confidence)
}
