package service

type HomeworkChanges interface {
	Start()
	Stop() error
}
