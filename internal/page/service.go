package page

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Page, error) {
	return s.repo.List()
}

func (s *Service) GetBySlug(slug string) (Page, error) {
	return s.repo.GetBySlug(slug)
}

func (s *Service) Upsert(p Page) (Page, error) {
	return s.repo.Upsert(p)
}

func (s *Service) Delete(slug string) error {
	return s.repo.Delete(slug)
}
