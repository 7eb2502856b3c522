package services

import (
	"strings"

	"wayfarer/internal/models/response_models"
)

// seedCatalogFor returns the built-in candidates for well-known destinations.
// It is the floor under the static supplier when no database catalog is
// configured; unknown destinations get nothing.
func seedCatalogFor(destination string) []response_models.POI {
	key := strings.ToLower(strings.TrimSpace(destination))
	for name, pois := range seedCatalog {
		if strings.Contains(key, name) {
			out := make([]response_models.POI, len(pois))
			copy(out, pois)
			return out
		}
	}
	return nil
}

var seedCatalog = map[string][]response_models.POI{
	"paris": {
		{Name: "Louvre Museum", Category: "museum", Lat: 48.8606, Lon: 2.3376, Description: "World's largest art museum, home of the Mona Lisa.", EstStayMin: 150, Rating: 4.7, PriceLevel: 2, Tags: []string{"art", "history", "museum"}},
		{Name: "Eiffel Tower", Category: "landmark", Lat: 48.8584, Lon: 2.2945, Description: "Iron lattice tower with observation decks over the city.", EstStayMin: 90, Rating: 4.6, PriceLevel: 2, Tags: []string{"landmark", "views"}},
		{Name: "Musée d'Orsay", Category: "museum", Lat: 48.8600, Lon: 2.3266, Description: "Impressionist masterpieces in a former railway station.", EstStayMin: 120, Rating: 4.7, PriceLevel: 2, Tags: []string{"art", "museum"}},
		{Name: "Notre-Dame Cathedral", Category: "landmark", Lat: 48.8530, Lon: 2.3499, Description: "Gothic cathedral on the Île de la Cité.", EstStayMin: 60, Rating: 4.6, PriceLevel: 0, Tags: []string{"history", "architecture"}},
		{Name: "Jardin du Luxembourg", Category: "park", Lat: 48.8462, Lon: 2.3372, Description: "Formal gardens with fountains and tree-lined promenades.", EstStayMin: 45, Rating: 4.6, PriceLevel: 0, Tags: []string{"park", "nature"}},
		{Name: "Le Marais food walk", Category: "food", Lat: 48.8570, Lon: 2.3580, Description: "Falafel stands, bakeries and bistros in the old Jewish quarter.", EstStayMin: 90, Rating: 4.5, PriceLevel: 1, Tags: []string{"food", "walking"}},
		{Name: "Sainte-Chapelle", Category: "landmark", Lat: 48.8554, Lon: 2.3450, Description: "Royal chapel famous for its floor-to-ceiling stained glass.", EstStayMin: 45, Rating: 4.7, PriceLevel: 1, Tags: []string{"history", "architecture"}},
		{Name: "Montmartre and Sacré-Cœur", Category: "neighborhood", Lat: 48.8867, Lon: 2.3431, Description: "Hilltop artists' quarter crowned by a white basilica.", EstStayMin: 120, Rating: 4.6, PriceLevel: 0, Tags: []string{"art", "views", "walking"}},
	},
	"tokyo": {
		{Name: "Senso-ji Temple", Category: "landmark", Lat: 35.7148, Lon: 139.7967, Description: "Tokyo's oldest temple, reached through the Kaminarimon gate.", EstStayMin: 75, Rating: 4.5, PriceLevel: 0, Tags: []string{"history", "temple"}},
		{Name: "Tokyo National Museum", Category: "museum", Lat: 35.7188, Lon: 139.7765, Description: "Japan's oldest and largest museum of art and antiquities.", EstStayMin: 120, Rating: 4.5, PriceLevel: 1, Tags: []string{"art", "history", "museum"}},
		{Name: "Meiji Shrine", Category: "landmark", Lat: 35.6764, Lon: 139.6993, Description: "Forested Shinto shrine dedicated to Emperor Meiji.", EstStayMin: 60, Rating: 4.6, PriceLevel: 0, Tags: []string{"nature", "temple"}},
		{Name: "Shibuya Crossing", Category: "neighborhood", Lat: 35.6595, Lon: 139.7005, Description: "The world's busiest pedestrian scramble.", EstStayMin: 30, Rating: 4.4, PriceLevel: 0, Tags: []string{"city", "views"}},
		{Name: "Tsukiji Outer Market", Category: "food", Lat: 35.6654, Lon: 139.7707, Description: "Street food stalls and seafood counters at the old fish market.", EstStayMin: 90, Rating: 4.5, PriceLevel: 1, Tags: []string{"food", "market"}},
		{Name: "Ueno Park", Category: "park", Lat: 35.7156, Lon: 139.7745, Description: "Large public park with museums, a zoo and cherry trees.", EstStayMin: 60, Rating: 4.5, PriceLevel: 0, Tags: []string{"park", "nature"}},
		{Name: "teamLab Planets", Category: "museum", Lat: 35.6494, Lon: 139.7898, Description: "Immersive digital art you walk through barefoot.", EstStayMin: 120, Rating: 4.6, PriceLevel: 3, Tags: []string{"art", "modern"}},
		{Name: "Shinjuku Gyoen", Category: "park", Lat: 35.6852, Lon: 139.7100, Description: "Landscaped garden blending Japanese, English and French styles.", EstStayMin: 60, Rating: 4.6, PriceLevel: 1, Tags: []string{"park", "nature"}},
	},
	"rome": {
		{Name: "Colosseum", Category: "landmark", Lat: 41.8902, Lon: 12.4922, Description: "The Flavian Amphitheatre, icon of imperial Rome.", EstStayMin: 120, Rating: 4.7, PriceLevel: 2, Tags: []string{"history", "architecture"}},
		{Name: "Roman Forum", Category: "landmark", Lat: 41.8925, Lon: 12.4853, Description: "Ruins of the political heart of ancient Rome.", EstStayMin: 90, Rating: 4.6, PriceLevel: 2, Tags: []string{"history"}},
		{Name: "Vatican Museums", Category: "museum", Lat: 41.9065, Lon: 12.4536, Description: "Papal art collections ending at the Sistine Chapel.", EstStayMin: 180, Rating: 4.6, PriceLevel: 2, Tags: []string{"art", "history", "museum"}},
		{Name: "Pantheon", Category: "landmark", Lat: 41.8986, Lon: 12.4769, Description: "Best-preserved ancient Roman temple, open oculus dome.", EstStayMin: 45, Rating: 4.7, PriceLevel: 0, Tags: []string{"history", "architecture"}},
		{Name: "Trastevere food walk", Category: "food", Lat: 41.8897, Lon: 12.4694, Description: "Trattorias and street food across the river.", EstStayMin: 90, Rating: 4.5, PriceLevel: 1, Tags: []string{"food", "walking"}},
		{Name: "Villa Borghese", Category: "park", Lat: 41.9142, Lon: 12.4923, Description: "Landscaped park with the Galleria Borghese at its center.", EstStayMin: 60, Rating: 4.6, PriceLevel: 0, Tags: []string{"park", "art", "nature"}},
		{Name: "Trevi Fountain", Category: "landmark", Lat: 41.9009, Lon: 12.4833, Description: "Baroque fountain where visitors toss a coin.", EstStayMin: 30, Rating: 4.6, PriceLevel: 0, Tags: []string{"architecture"}},
	},
	"new york": {
		{Name: "Metropolitan Museum of Art", Category: "museum", Lat: 40.7794, Lon: -73.9632, Description: "Encyclopedic art museum on Fifth Avenue.", EstStayMin: 150, Rating: 4.7, PriceLevel: 2, Tags: []string{"art", "museum"}},
		{Name: "Central Park", Category: "park", Lat: 40.7829, Lon: -73.9654, Description: "843-acre park at the heart of Manhattan.", EstStayMin: 90, Rating: 4.7, PriceLevel: 0, Tags: []string{"park", "nature"}},
		{Name: "Statue of Liberty", Category: "landmark", Lat: 40.6892, Lon: -74.0445, Description: "Ferry trip to the harbor's copper colossus.", EstStayMin: 180, Rating: 4.6, PriceLevel: 2, Tags: []string{"history", "landmark"}},
		{Name: "Brooklyn Bridge walk", Category: "landmark", Lat: 40.7061, Lon: -73.9969, Description: "Pedestrian promenade over the East River.", EstStayMin: 60, Rating: 4.6, PriceLevel: 0, Tags: []string{"walking", "views"}},
		{Name: "MoMA", Category: "museum", Lat: 40.7614, Lon: -73.9776, Description: "Modern and contemporary art in Midtown.", EstStayMin: 120, Rating: 4.5, PriceLevel: 2, Tags: []string{"art", "modern", "museum"}},
		{Name: "Chelsea Market", Category: "food", Lat: 40.7424, Lon: -74.0060, Description: "Food hall and market under the High Line.", EstStayMin: 60, Rating: 4.5, PriceLevel: 1, Tags: []string{"food", "market"}},
		{Name: "The High Line", Category: "park", Lat: 40.7480, Lon: -74.0048, Description: "Elevated rail line turned linear park.", EstStayMin: 45, Rating: 4.6, PriceLevel: 0, Tags: []string{"park", "walking", "views"}},
	},
}
