package course

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Course, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Course, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(c Course) (Course, error) {
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Course) (Course, error) {
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) ListApplications() ([]Application, error) {
	return s.repo.ListApplications()
}

// Apply records a course application after checking the course exists.
func (s *Service) Apply(a Application) (Application, error) {
	if _, err := s.repo.GetByID(a.CourseID); err != nil {
		return Application{}, err
	}
	return s.repo.CreateApplication(a)
}
