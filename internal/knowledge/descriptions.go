package knowledge

import "github.com/alexanderramin/ecostats/internal/domain"

// variableDescriptions explains each measured variable for citizen readers.
var variableDescriptions = map[domain.VariableKey]domain.VariableDescription{
	domain.VarTemperature: {
		Key:         domain.VarTemperature,
		DisplayName: "🌡️ Temperatura",
		Explanation: "Indica qué tan caliente o frío está el ambiente, medida en grados Celsius (°C). " +
			"Afecta la salud, la agricultura y los ecosistemas. Un aumento sostenido puede indicar olas de calor.",
	},
	domain.VarHumidity: {
		Key:         domain.VarHumidity,
		DisplayName: "💧 Humedad relativa",
		Explanation: "Nos dice cuánta agua hay en el aire, en porcentaje (%). " +
			"Una humedad alta puede hacer que sintamos más calor del que marca el termómetro.",
	},
	domain.VarPrecipitation: {
		Key:         domain.VarPrecipitation,
		DisplayName: "🌧️ Precipitación",
		Explanation: "Cantidad de lluvia registrada en milímetros (mm). Las estaciones reportan cada 15 minutos, " +
			"así que la máxima es la lluvia más fuerte en un intervalo y el total es la lluvia acumulada. " +
			"Es clave para entender sequías, inundaciones y el ciclo del agua.",
	},
	domain.VarPM25: {
		Key:         domain.VarPM25,
		DisplayName: "🌫️ PM2.5 (partículas finas)",
		Explanation: "Son pequeñas partículas en el aire que pueden afectar la salud respiratoria. " +
			"Se miden en microgramos por metro cúbico (µg/m³); por encima de 56 µg/m³ el aire se considera perjudicial.",
	},
	domain.VarAQI: {
		Key:         domain.VarAQI,
		DisplayName: "🌈 Índice de Calidad del Aire (ICA)",
		Explanation: "Nos muestra qué tan limpio o contaminado está el aire mediante una escala de colores: " +
			"🟢 Buena | 🟡 Moderada | 🟠 Regular | 🔴 Mala.",
	},
	domain.VarWindSpeed: {
		Key:         domain.VarWindSpeed,
		DisplayName: "💨 Velocidad del viento",
		Explanation: "Qué tan rápido se mueve el aire, en metros por segundo (m/s). " +
			"Solo las estaciones meteorológicas con anemómetro la registran.",
	},
	domain.VarWindDirection: {
		Key:         domain.VarWindDirection,
		DisplayName: "🧭 Dirección del viento",
		Explanation: "Desde dónde sopla el viento, en grados (0° es el norte). " +
			"Se visualiza con una rosa de vientos; no tiene máximos ni mínimos útiles.",
	},
	domain.VarPressure: {
		Key:         domain.VarPressure,
		DisplayName: "🎈 Presión atmosférica",
		Explanation: "El peso del aire sobre la estación, en hectopascales (hPa). " +
			"Cambia con la altitud y baja cuando se acercan lluvias o tormentas.",
	},
}
