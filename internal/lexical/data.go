package lexical

import "advisor/internal/domain"

// Static language data for the analyzer. Kept as versioned tables so the
// keyword sets can be extended without touching classification logic.

var stopwordList = []string{
	"и", "в", "во", "не", "что", "он", "на", "я", "с", "со", "как", "а", "то", "все", "она",
	"так", "его", "но", "да", "ты", "к", "у", "же", "вы", "за", "бы", "по", "только", "ее",
	"мне", "было", "вот", "от", "меня", "еще", "нет", "о", "из", "ему", "теперь", "когда",
	"даже", "ну", "вдруг", "ли", "если", "уже", "или", "ни", "быть", "был", "него", "чего",
	"при", "об", "этот", "тот", "такой", "такая", "такое", "такие",
	"эти", "эта", "это", "который", "которого", "которому", "которым", "которую",
	"которые", "которых", "которыми", "кто", "кого", "кому", "кем", "где",
	"какой", "какая", "какое", "какие", "сколько", "чей", "чья", "чье", "чьи", "почему",
	"зачем",
}

// synonyms maps a canonical domain term to the surface forms of its paradigm.
// A keyword matching any surface form expands to the whole set.
var synonyms = map[string][]string{
	"стипендия":     {"стипендия", "стипендиальный", "стипендиат", "стипендию", "стипендией"},
	"социальная":    {"социальная", "социальный", "социально", "социальную", "социальным", "социальной"},
	"академическая": {"академическая", "академический", "академически", "академическую", "академическим", "академической"},
	"президентская": {"президентская", "президентский", "президентски", "президентскую", "президентским", "президентской"},
	"размер":        {"размер", "сумма", "величина", "объем", "количество", "сколько"},
	"рубль":         {"рубль", "руб", "рублей", "₽", "руб.", "рублях", "рублями"},
	"документ":      {"документ", "справка", "заявление", "заявка", "обращение", "документы", "документами"},
	"деканат":       {"деканат", "декана", "деканату", "деканатом", "деканате", "деканата", "деканаты"},
	"срок":          {"срок", "дата", "период", "время", "когда", "до", "после", "в течение"},
	"подача":        {"подача", "предоставление", "передача", "отправка", "доставка", "подать", "подавать", "подал"},
	"задолженность": {"задолженность", "долг", "долги", "задолженности", "задолженностями", "задолженностям"},
	"сдать":         {"сдать", "сдавать", "сдал", "сдаю", "сдаем", "сдаете", "сдают", "пересдать", "пересдавать"},
	"университет":   {"университет", "вуз", "институт", "университета", "университету", "университетом", "университете"},
	"студент":       {"студент", "студентка", "студенты", "студентки", "студента", "студентом", "студенткой"},
}

// questionKeywords is an ordered table: on a tie the earlier category wins.
var questionKeywords = []struct {
	Type    domain.QuestionType
	Phrases []string
}{
	{domain.QuestionDefinition, []string{
		"что такое", "определение", "понятие", "означает",
		"расскажи про", "объясни", "описание", "характеристика",
	}},
	{domain.QuestionAmount, []string{
		"сколько", "размер", "сумма", "выплата", "начисление",
		"получать", "выплачивается", "начисляется", "стоимость",
	}},
	{domain.QuestionRequirements, []string{
		"требования", "условия", "критерии", "кто может получить",
		"нужно", "необходимо", "документы", "список", "перечень",
	}},
	{domain.QuestionDeadline, []string{
		"срок", "когда", "период", "дата", "время",
		"до какого числа", "когда подавать", "когда получать",
	}},
	{domain.QuestionProcedure, []string{
		"как получить", "процедура", "порядок", "оформление",
		"шаги", "этапы", "процесс", "алгоритм", "инструкция",
	}},
}

// scholarshipKeywords is an ordered table of category trigger phrases. The
// same surface forms gate amount extraction by surrounding context.
var scholarshipKeywords = []struct {
	Type    domain.ScholarshipType
	Phrases []string
}{
	{domain.ScholarshipAcademic, []string{
		"обычная", "базовая", "академическая", "стандартная",
		"основная", "регулярная", "ежемесячная",
	}},
	{domain.ScholarshipEnhanced, []string{
		"повышенная", "увеличенная", "высокая", "премиальная",
		"надбавка", "дополнительная", "стимулирующая",
	}},
	{domain.ScholarshipSocial, []string{
		"социальная", "соц", "для нуждающихся", "материальная помощь",
		"поддержка", "льготная", "для малоимущих",
	}},
	{domain.ScholarshipSpecial, []string{
		"специальная", "особая", "для отличников", "именная",
		"целевая", "персональная", "для талантливых",
	}},
}

// smallTalkKeywords flag greetings and chit-chat that should bypass retrieval.
var smallTalkKeywords = []string{
	"привет", "здравствуй", "здравствуйте", "как дела", "кто ты", "что ты умеешь",
	"доброе утро", "добрый день", "добрый вечер", "спасибо", "пожалуйста",
	"до свидания", "пока",
}
