package chatbot

import "github.com/alexanderramin/ecostats/internal/domain"

// RacimoURL is the public page of the citizen monitoring network.
const RacimoURL = "https://class.redclara.net/halley/moncora/intro.html"

// Greeting seeds every new conversation.
const Greeting = "¡Hola! 👋 Soy **EcoBot**, el asistente de EcoStats. " +
	"Puedo explicarte las variables ambientales, guiarte por los gráficos " +
	"y darte estadísticas de las estaciones de RACiMo en Santander. ¿Por dónde empezamos?"

// HelpMessage is the reply when nothing in the question could be understood.
const HelpMessage = "No entendí tu pregunta 🤔. Prueba preguntar por una variable " +
	"(*¿qué es el PM2.5?*), por una estadística (*temperatura máxima de Halley UIS*) " +
	"o por una estación (*estadísticas de la estación 3*). También puedes usar los botones del menú."

var topicReplies = map[domain.Topic]string{
	domain.TopicGreeting: "¡Hola! 👋 ¿En qué puedo ayudarte? Pregúntame por una variable, " +
		"una estación o escribe *ayuda* para ver cómo navegar.",
	domain.TopicThanks:   "¡Con gusto! 😊 Si tienes otra pregunta, aquí estaré.",
	domain.TopicFarewell: "¡Hasta pronto! 👋 Gracias por explorar los datos ambientales de Santander.",
	domain.TopicAnimation: "🎞️ La **animación** muestra cómo cambian los valores de cada estación " +
		"a lo largo de los meses de Septiembre, Octubre y Noviembre. " +
		"Usa el botón de reproducción para avanzar en el tiempo.",
}

// mapReply is formatted with the station count.
const mapReply = "🗺️ En la sección **Mapa de estaciones** verás la ubicación de las %d estaciones de RACiMo. " +
	"Pasa el cursor sobre cada punto para ver su nombre y sus coordenadas."

// topicStages are the topics that move the conversation to a menu.
var topicStages = map[domain.Topic]domain.Stage{
	domain.TopicCharts:     domain.StageChartGuide,
	domain.TopicNavigation: domain.StageNavigationHelp,
	domain.TopicDataSource: domain.StageDataSource,
	domain.TopicStations:   domain.StageStationInfo,
}

const (
	rootText = "¿Sobre qué quieres aprender? Elige un tema o escríbeme una pregunta, " +
		"por ejemplo *temperatura máxima de Halley UIS*."

	navigationText = "🧭 **Cómo navegar**\n" +
		"- **Datos teóricos**: qué mide cada variable y por qué importa.\n" +
		"- **Mapa de estaciones**: dónde está cada estación de la red.\n" +
		"- **Visualización**: elige una estación y un mes para ver sus gráficos.\n" +
		"- **Asistente**: pregúntame en lenguaje sencillo, por ejemplo *humedad de la estación 2*.\n" +
		"Usa los botones para moverte y *Volver* para regresar."

	chartGuideText = "📈 Cada variable se muestra con el gráfico que mejor la representa. " +
		"Elige uno para saber cómo leerlo."

	variableMenuText = "🔬 Estas son las variables que miden las estaciones. Elige una para ver su explicación."

	dataSourceText = "Los datos provienen de **RACiMo**, la Red Ambiental Ciudadana de Monitoreo, " +
		"con estaciones en Bucaramanga y su área metropolitana que reportan cada 15 minutos.\n" +
		"🔗 Visita su página aquí: " + RacimoURL
)

type chartGuide struct {
	stage domain.Stage
	label string
	text  string
}

var chartGuides = []chartGuide{
	{
		stage: domain.StageChartLine,
		label: "📉 Líneas (PM2.5)",
		text: "El **gráfico de líneas** muestra la evolución del PM2.5 en el tiempo para la estación elegida. " +
			"La línea roja punteada marca el límite perjudicial de 56 µg/m³: " +
			"los puntos por encima indican aire dañino para la salud.",
	},
	{
		stage: domain.StageChartScatter,
		label: "🔵 Dispersión (Temperatura)",
		text: "El **gráfico de dispersión** ubica cada lectura de temperatura como un punto. " +
			"Sirve para ver a qué horas del día se concentran los valores altos y bajos.",
	},
	{
		stage: domain.StageChartArea,
		label: "🌧️ Área (Precipitación)",
		text: "El **gráfico de área** muestra la lluvia registrada cada 15 minutos. " +
			"Los picos más altos corresponden a los aguaceros más intensos.",
	},
	{
		stage: domain.StageChartHeatmap,
		label: "🔥 Mapa de calor (Humedad)",
		text: "El **mapa de calor** cruza días y horas y colorea cada celda según la humedad relativa. " +
			"Los tonos más intensos indican mayor humedad.",
	},
}
