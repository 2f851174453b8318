package answers

import "fmt"

const (
	VerdictApproved  = "Работа проверена: ревьюеру всё понравилось. Ура!"
	VerdictReviewing = "Работа взята на проверку ревьюером."
	VerdictRejected  = "Работа проверена: у ревьюера есть замечания."

	NoHomeworksInfo = "Ошибка! В полученном от API ответе нет информации о домашней работе."
)

const (
	statusChangedTemplate = `Изменился статус проверки работы "%s". %s`
	failureTemplate       = "Сбой в работе программы: %v"
)

func StatusChanged(homeworkName, verdict string) string {
	return fmt.Sprintf(statusChangedTemplate, homeworkName, verdict)
}

func Failure(err error) string {
	return fmt.Sprintf(failureTemplate, err)
}
